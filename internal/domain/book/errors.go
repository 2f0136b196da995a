package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookIDDuplicate 图书编号已存在
	ErrBookIDDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书编号已存在")

	// ErrInvalidBookID 图书编号格式不正确
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "图书编号不能为空且不超过10个字符")

	// ErrInvalidBookName 书名不合法
	ErrInvalidBookName = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空且不超过30个字符")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
