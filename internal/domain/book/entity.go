package book

// Book 图书实体(聚合根)
// 设计说明:
// 1. ID即Bookid,是店内使用的短编号(如B001),由店员录入,数据库层保证唯一
// 2. 价格使用int64存储最小货币单位(避免浮点数精度问题)
// 3. Quantity是在库数量,不变量:永远不为负
type Book struct {
	ID          string // 图书编号(业务主键)
	Name        string // 书名
	Genre       string // 分类
	Author      string // 作者
	Publication string // 出版社
	Price       int64  // 单价(最小货币单位)
	Quantity    int    // 在库数量
}

// NewBook 创建新图书(工厂方法)
// 字段合法性由Service校验,工厂方法只负责组装
func NewBook(id, name, genre, author, publication string, price int64, quantity int) *Book {
	return &Book{
		ID:          id,
		Name:        name,
		Genre:       genre,
		Author:      author,
		Publication: publication,
		Price:       price,
		Quantity:    quantity,
	}
}

// DecrStock 扣减库存(用于销售)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Quantity < quantity {
		return ErrInsufficientStock
	}
	b.Quantity -= quantity
	return nil
}

// IncrStock 增加库存(用于补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Quantity += quantity
	return nil
}

// InStock 是否有货
func (b *Book) InStock() bool {
	return b.Quantity > 0
}
