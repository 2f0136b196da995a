package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase     *appbook.AddBookUseCase
	adjustStockUseCase *appbook.AdjustStockUseCase
	getBookUseCase     *appbook.GetBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	adjustStockUseCase *appbook.AdjustStockUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:     addBookUseCase,
		adjustStockUseCase: adjustStockUseCase,
		getBookUseCase:     getBookUseCase,
		listBooksUseCase:   listBooksUseCase,
	}
}

// AddBook 新书入库
// @Summary      新书入库
// @Description  录入新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "图书编号已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	b, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		BookID:      req.BookID,
		BookName:    req.BookName,
		Genre:       req.Genre,
		Author:      req.Author,
		Publication: req.Publication,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		BookID:      b.ID,
		BookName:    b.Name,
		Genre:       b.Genre,
		Author:      b.Author,
		Publication: b.Publication,
		Price:       b.Price,
		Quantity:    b.Quantity,
	})
}

// AdjustStock 库存调整
// @Summary      库存调整
// @Description  进货(add)或减库存(subtract)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AdjustStockRequest true "调整信息"
// @Success      200 {object} response.Response{data=appbook.AdjustStockResponse}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/stock [post]
func (h *BookHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.adjustStockUseCase.Execute(c.Request.Context(), appbook.AdjustStockRequest{
		BookID:   req.BookID,
		Action:   req.Action,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按(分类,书名)排序的在册图书列表
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        in_stock_only query bool false "只看有货的"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	inStockOnly := c.Query("in_stock_only") == "true"

	books, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		InStockOnly: inStockOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = dto.BookResponse{
			BookID:      b.ID,
			BookName:    b.Name,
			Genre:       b.Genre,
			Author:      b.Author,
			Publication: b.Publication,
			Price:       b.Price,
			Quantity:    b.Quantity,
		}
	}
	response.Success(c, list)
}

// LookupBook 收银台单本查询(旧系统兼容接口)
// 响应结构被收银台前端写死,保持扁平格式,不套信封
// @Summary      单本图书查询
// @Description  按编号查询书名、单价与在库数量,带5分钟缓存
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书编号"
// @Success      200 {object} dto.BookLookupResponse
// @Router       /api/v1/book/{id} [get]
func (h *BookHandler) LookupBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := apperrors.GetAppError(err)
		errType := "query_error"
		switch appErr.Code {
		case apperrors.ErrCodeConnectionUnavailable:
			errType = "connection"
		case apperrors.ErrCodeBookNotFound:
			errType = "not_found"
		}
		c.JSON(http.StatusOK, dto.BookLookupErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			ErrorType: errType,
		})
		return
	}

	c.JSON(http.StatusOK, dto.BookLookupResponse{
		Success:           true,
		BookName:          result.Book.Name,
		Price:             result.Book.Price,
		AvailableQuantity: result.Book.Quantity,
		Cached:            result.Cached,
	})
}

// ListAllBooks 收银台全量列表(旧系统兼容接口)
// 字段名沿用旧系统的列名
// @Summary      全量图书列表
// @Description  收银台下拉框用的全量列表
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.BookListAllResponse
// @Router       /api/v1/books/all [get]
func (h *BookHandler) ListAllBooks(c *gin.Context) {
	books, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{})
	if err != nil {
		appErr := apperrors.GetAppError(err)
		c.JSON(http.StatusOK, dto.BookLookupErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			ErrorType: "query_error",
		})
		return
	}

	items := make([]dto.BookListAllItem, len(books))
	for i, b := range books {
		items[i] = dto.BookListAllItem{
			BookID:   b.ID,
			BookName: b.Name,
			Price:    b.Price,
			Quantity: b.Quantity,
		}
	}
	c.JSON(http.StatusOK, dto.BookListAllResponse{
		Success: true,
		Books:   items,
		Count:   len(items),
	})
}
