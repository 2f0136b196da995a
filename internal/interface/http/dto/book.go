package dto

// AddBookRequest HTTP新书入库请求
type AddBookRequest struct {
	BookID      string `json:"book_id" binding:"required,max=10" example:"B001"`
	BookName    string `json:"book_name" binding:"required,max=30" example:"Go程序设计"`
	Genre       string `json:"genre" binding:"max=20" example:"计算机"`
	Author      string `json:"author" binding:"max=20" example:"某某"`
	Publication string `json:"publication" binding:"max=30" example:"某出版社"`
	Price       int64  `json:"price" binding:"min=0" example:"4500"` // 单价(最小货币单位)
	Quantity    int    `json:"quantity" binding:"min=0" example:"20"`
}

// BookResponse HTTP图书响应(信封格式接口使用)
type BookResponse struct {
	BookID      string `json:"book_id" example:"B001"`
	BookName    string `json:"book_name" example:"Go程序设计"`
	Genre       string `json:"genre" example:"计算机"`
	Author      string `json:"author" example:"某某"`
	Publication string `json:"publication" example:"某出版社"`
	Price       int64  `json:"price" example:"4500"`
	Quantity    int    `json:"quantity" example:"20"`
}

// AdjustStockRequest HTTP库存调整请求
type AdjustStockRequest struct {
	BookID   string `json:"book_id" binding:"required" example:"B001"`
	Action   string `json:"action" binding:"required,oneof=add subtract" example:"add"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"5"`
}

// =========================================
// 旧系统兼容接口的扁平响应
// 这两个查询接口的JSON结构被收银台前端写死,保持原样,不套信封
// =========================================

// BookLookupResponse GET /api/v1/book/:id 成功响应
type BookLookupResponse struct {
	Success           bool   `json:"success"`
	BookName          string `json:"book_name"`
	Price             int64  `json:"price"`
	AvailableQuantity int    `json:"available_quantity"`
	Cached            bool   `json:"cached"`
}

// BookLookupErrorResponse GET /api/v1/book/:id 失败响应
// ErrorType取值:connection | not_found | query_error
type BookLookupErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

// BookListAllItem GET /api/v1/books/all 列表项
// 字段名沿用旧系统的列名
type BookListAllItem struct {
	BookID   string `json:"Bookid"`
	BookName string `json:"BookName"`
	Price    int64  `json:"Price"`
	Quantity int    `json:"Quantity"`
}

// BookListAllResponse GET /api/v1/books/all 响应
type BookListAllResponse struct {
	Success bool              `json:"success"`
	Books   []BookListAllItem `json:"books"`
	Count   int               `json:"count"`
}
