package sale

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 销售领域错误定义
var (
	// ErrInvalidPhone 手机号必须为10位数字
	ErrInvalidPhone = apperrors.ErrInvalidPhone

	// ErrInvalidCustomerName 顾客姓名不合法
	ErrInvalidCustomerName = apperrors.New(apperrors.ErrCodeInvalidParams, "顾客姓名不能为空且不超过20个字符")

	// ErrEmptyTransaction 过滤后没有任何有效明细
	ErrEmptyTransaction = apperrors.New(apperrors.ErrCodeEmptyTransaction, "交易明细不能为空")

	// ErrDuplicateLineItem 同一笔交易中出现重复的图书编号
	ErrDuplicateLineItem = apperrors.New(apperrors.ErrCodeDuplicateLineItem, "同一笔交易中图书编号不能重复")
)
