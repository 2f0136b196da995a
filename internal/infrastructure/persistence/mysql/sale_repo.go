package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/sale"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// saleRepository 销售仓储实现(MySQL)
// 设计说明:
// 1. 账本只追加:只有批量插入与查询,没有更新删除
// 2. CreateBatch必须在事务中调用,与库存扣减共用一次提交
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售仓储
func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

// CreateBatch 批量写入一笔交易的全部明细行
func (r *saleRepository) CreateBatch(ctx context.Context, lines []*sale.SaleLine) error {
	if len(lines) == 0 {
		return nil
	}

	models := make([]SaleModel, len(lines))
	for i, l := range lines {
		models[i] = toSaleModel(l)
	}

	if err := dbFromContext(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "写入销售明细失败")
	}

	// 回填自增ID与数据库生成的成交时间
	for i := range lines {
		lines[i].ID = models[i].ID
		lines[i].SaleDate = models[i].SaleDate
	}
	return nil
}

// ListAll 查询全部销售记录,按成交时间倒序
// 同一笔交易内按自增ID保持录入顺序
func (r *saleRepository) ListAll(ctx context.Context) ([]*sale.SaleLine, error) {
	var models []SaleModel
	err := dbFromContext(ctx, r.db).
		Order("SaleDate DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售记录失败")
	}

	lines := make([]*sale.SaleLine, len(models))
	for i := range models {
		lines[i] = toSaleEntity(&models[i])
	}
	return lines, nil
}

// TotalRevenue 总销售额 Σ(Price × Quantity)
func (r *saleRepository) TotalRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&SaleModel{}).
		Select("COALESCE(SUM(Price * Quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计销售额失败")
	}
	return total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toSaleModel 领域实体 → GORM模型
func toSaleModel(l *sale.SaleLine) SaleModel {
	m := SaleModel{
		ID:            l.ID,
		TransactionID: l.TransactionID,
		CustomerName:  l.CustomerName,
		PhoneNumber:   l.PhoneNumber,
		BookName:      l.BookName,
		Quantity:      l.Quantity,
		Price:         l.Price,
	}
	if l.BookID != "" {
		id := l.BookID
		m.BookID = &id
	}
	return m
}

// toSaleEntity GORM模型 → 领域实体
// 图书被删除后外键为NULL,实体里表现为空字符串
func toSaleEntity(model *SaleModel) *sale.SaleLine {
	l := &sale.SaleLine{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		CustomerName:  model.CustomerName,
		PhoneNumber:   model.PhoneNumber,
		BookName:      model.BookName,
		Quantity:      model.Quantity,
		Price:         model.Price,
		SaleDate:      model.SaleDate,
	}
	if model.BookID != nil {
		l.BookID = *model.BookID
	}
	return l
}
