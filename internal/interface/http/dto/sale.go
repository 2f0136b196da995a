package dto

// CreateSaleRequest HTTP售书请求
// 一笔交易可包含多本图书
type CreateSaleRequest struct {
	CustomerName string                  `json:"customer_name" binding:"required,max=20" example:"张三"`
	PhoneNumber  string                  `json:"phone_number" binding:"required" example:"1234567890"`
	Items        []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSaleItemRequest 购买明细项
type CreateSaleItemRequest struct {
	BookID   string `json:"book_id" binding:"required" example:"B001"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"2"`
}
