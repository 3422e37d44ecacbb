package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appauth "github.com/mohammedyahyaa/ECommerceTask/internal/application/auth"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	infraauth "github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// respondError maps domain errors onto HTTP statuses. Anything the
// taxonomy does not know is an internal error.
func respondError(c *gin.Context, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, order.ErrForbidden):
		writeError(c, http.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, appauth.ErrBadCredentials),
		errors.Is(err, infraauth.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.As(err, &stockErr),
		errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrMissingField),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidQuantity),
		errors.Is(err, product.ErrMissingField),
		errors.Is(err, order.ErrNoLines),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrMissingField):
		writeError(c, http.StatusBadRequest, "BAD_REQUEST", err)
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err)
	}
}

func respondBindError(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err)
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorResponse{
		Status:  status,
		Error:   code,
		Message: err.Error(),
		Path:    c.Request.URL.Path,
	})
}

/* ================= response DTOs ================= */

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type OrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount_applied"`
	Total       decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"total_discount"`
	Total      decimal.Decimal     `json:"order_total"`
	CreatedAt  time.Time           `json:"created_at"`
	Lines      []OrderLineResponse `json:"items"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
			Total:       line.Total,
		})
	}
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		Total:      o.Total,
		CreatedAt:  o.CreatedAt,
		Lines:      lines,
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
