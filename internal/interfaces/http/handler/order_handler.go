package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/mohammedyahyaa/ECommerceTask/internal/application/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/middleware"
)

type OrderHandler struct {
	orders *apporder.Service
}

func NewOrderHandler(orders *apporder.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	Items []orderLineRequest `json:"items" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customerID, _ := middleware.Identity(c)
	lines := make([]order.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	placed, err := h.orders.PlaceOrder(c.Request.Context(), customerID, lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(placed))
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	requesterID, role := middleware.Identity(c)
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"), requesterID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	customerID, _ := middleware.Identity(c)
	orders, err := h.orders.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}
