package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库特定错误(如编号重复)在这里转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookIDDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	return nil
}

// FindByID 根据编号查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).Where("Bookid = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// List 查询图书列表,按(Genre, BookName)排序
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	var models []BookModel

	query := dbFromContext(ctx, r.db).Model(&BookModel{})
	if params.InStockOnly {
		query = query.Where("Quantity > 0")
	}

	if err := query.Order("Genre ASC, BookName ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
// 必须在事务中调用:dbFromContext拿到的必须是事务DB,否则锁没有意义
func (r *bookRepository) LockByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("Bookid = ?", id).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateStock 原子更新库存
// UPDATE Available_Books SET Quantity = Quantity + delta
// WHERE Bookid = ? AND Quantity + delta >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id string, delta int) error {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("Bookid = ?", id).
		Where("Quantity + ? >= 0", delta). // 防止库存为负
		Update("Quantity", gorm.Expr("Quantity + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足,再查一次确定原因
		var model BookModel
		if err := db.Where("Bookid = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return book.ErrInsufficientStock
	}

	return nil
}

// Count 图书种类总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := dbFromContext(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计图书总数失败")
	}
	return total, nil
}

// CountLowStock 库存低于threshold的图书种类数
func (r *bookRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&BookModel{}).
		Where("Quantity < ?", threshold).
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计低库存图书失败")
	}
	return total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Name:        b.Name,
		Genre:       b.Genre,
		Quantity:    b.Quantity,
		Author:      b.Author,
		Publication: b.Publication,
		Price:       b.Price,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Name:        model.Name,
		Genre:       model.Genre,
		Quantity:    model.Quantity,
		Author:      model.Author,
		Publication: model.Publication,
		Price:       model.Price,
	}
}
