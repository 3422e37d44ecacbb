package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/handler"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
}

func RegisterRoutes(r *gin.Engine, tokens *auth.TokenService, h Handlers) {
	api := r.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.RequireAuth(tokens))
	{
		authed.POST("/orders", h.Order.Create)
		// my-orders must register before :id or gin would shadow it.
		authed.GET("/orders/my-orders", h.Order.MyOrders)
		authed.GET("/orders/:id", h.Order.GetByID)

		authed.GET("/products", h.Product.List)
		authed.GET("/products/:id", h.Product.GetByID)
	}

	admin := authed.Group("", middleware.RequireAdmin())
	{
		admin.GET("/orders", h.Order.All)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)

		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.GetByID)
		admin.PUT("/users/:id", h.User.Update)
		admin.DELETE("/users/:id", h.User.Delete)
	}
}
