package book

import (
	"context"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验,不依赖具体的Repository实现(依赖倒置)
// 2. 库存调整涉及事务与行锁,放在application层编排,不在此接口中
type Service interface {
	// AddBook 新书入库
	// 业务规则:
	// - 编号必填且不超过10个字符
	// - 书名必填且不超过30个字符
	// - 价格、库存不能为负数
	// - 编号不能重复(数据库唯一约束保证)
	AddBook(ctx context.Context, id, name, genre, author, publication string, price int64, quantity int) (*Book, error)

	// GetBook 根据编号获取图书
	GetBook(ctx context.Context, id string) (*Book, error)

	// ListBooks 查询图书列表,按(分类,书名)排序
	ListBooks(ctx context.Context, params ListParams) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新书入库
func (s *service) AddBook(ctx context.Context, id, name, genre, author, publication string, price int64, quantity int) (*Book, error) {
	// 1. 规范化输入
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	genre = strings.TrimSpace(genre)
	author = strings.TrimSpace(author)
	publication = strings.TrimSpace(publication)

	// 2. 字段校验
	if id == "" || len(id) > 10 {
		return nil, ErrInvalidBookID
	}
	if name == "" || len(name) > 30 {
		return nil, ErrInvalidBookName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidStock
	}

	// 3. 创建实体并持久化
	// 编号唯一性由数据库主键保证,Repository负责把重复错误转换为ErrBookIDDuplicate
	b := NewBook(id, name, genre, author, publication, price, quantity)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据编号获取图书
func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidBookID
	}
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}
