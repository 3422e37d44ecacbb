package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/mohammedyahyaa/ECommerceTask/internal/application/auth"
	"github.com/mohammedyahyaa/ECommerceTask/internal/application/catalog"
	apporder "github.com/mohammedyahyaa/ECommerceTask/internal/application/order"
	appuser "github.com/mohammedyahyaa/ECommerceTask/internal/application/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/pricing"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/persistence/memory"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/handler"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/router"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

type noopPublisher struct{}

func (noopPublisher) PublishOrderPlaced(context.Context, *order.Order) error { return nil }

type testAPI struct {
	engine  *gin.Engine
	tokens  *auth.TokenService
	users   *appuser.Service
	catalog *catalog.Service
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	productRepo := memory.NewProductRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	ledger := memory.NewLedger(store)
	log := logger.NewNop()

	tokens := auth.NewTokenService(config.AuthConfig{
		JWTSecret: "handler-test-secret",
		TokenTTL:  time.Hour,
	})

	userService := appuser.NewService(userRepo, log)
	authService := appauth.NewService(userRepo, tokens, log)
	catalogService := catalog.NewService(productRepo, ledger, log)
	orderService := apporder.NewService(userRepo, productRepo, orderRepo, ledger, pricing.NewCalculator(), noopPublisher{}, log)

	engine := gin.New()
	router.RegisterRoutes(engine, tokens, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService),
		User:    handler.NewUserHandler(userService),
		Product: handler.NewProductHandler(catalogService),
		Order:   handler.NewOrderHandler(orderService),
	})

	return &testAPI{engine: engine, tokens: tokens, users: userService, catalog: catalogService}
}

func (a *testAPI) registerUser(t *testing.T, username string, role user.Role) (string, string) {
	t.Helper()
	u, err := a.users.Register(context.Background(), appuser.RegisterCommand{
		Username: username,
		Password: "secret-pass",
		Role:     role,
	})
	require.NoError(t, err)

	token, err := a.tokens.Generate(u)
	require.NoError(t, err)
	return u.ID, token
}

func (a *testAPI) addProduct(t *testing.T, name, price string, quantity int) string {
	t.Helper()
	p, err := a.catalog.Create(context.Background(), catalog.CreateProductCommand{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	})
	require.NoError(t, err)
	return p.ID
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_Create(t *testing.T) {
	api := newTestAPI(t)
	customerID, token := api.registerUser(t, "alice", user.RolePremium)
	productID := api.addProduct(t, "Monitor", "300.00", 10)

	rec := api.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 2}},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID         string `json:"id"`
		CustomerID string `json:"customer_id"`
		Subtotal   string `json:"subtotal"`
		Discount   string `json:"total_discount"`
		Total      string `json:"order_total"`
		Items      []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, customerID, resp.CustomerID)
	// Premium 10% plus high-order 5% on a 600 subtotal.
	assert.Equal(t, "600", resp.Subtotal)
	assert.Equal(t, "90", resp.Discount)
	assert.Equal(t, "510", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, productID, resp.Items[0].ProductID)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestOrderHandler_Create_InsufficientStock(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.registerUser(t, "bob", user.RoleStandard)
	productID := api.addProduct(t, "Keyboard", "45.00", 1)

	rec := api.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 5}},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BAD_REQUEST", resp.Error)
	assert.Contains(t, resp.Message, "insufficient stock")
	assert.Equal(t, "/api/orders", resp.Path)
}

func TestOrderHandler_Create_UnknownProduct(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.registerUser(t, "carol", user.RoleStandard)

	rec := api.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"product_id": "no-such-product", "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_Create_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/orders", "", gin.H{
		"items": []gin.H{{"product_id": "x", "quantity": 1}},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderHandler_GetByID_OwnershipEnforced(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.registerUser(t, "alice", user.RoleStandard)
	_, bobToken := api.registerUser(t, "bob", user.RoleStandard)
	_, adminToken := api.registerUser(t, "root", user.RoleAdministrator)
	productID := api.addProduct(t, "Mouse", "25.00", 10)

	rec := api.do(t, http.MethodPost, "/api/orders", aliceToken, gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	path := fmt.Sprintf("/api/orders/%s", placed.ID)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, path, aliceToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodGet, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, path, adminToken, nil).Code)
}

func TestOrderHandler_MyOrders(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.registerUser(t, "alice", user.RoleStandard)
	_, bobToken := api.registerUser(t, "bob", user.RoleStandard)
	productID := api.addProduct(t, "Cable", "5.00", 10)

	for i := 0; i < 2; i++ {
		rec := api.do(t, http.MethodPost, "/api/orders", aliceToken, gin.H{
			"items": []gin.H{{"product_id": productID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(t, http.MethodGet, "/api/orders/my-orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var aliceOrders []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliceOrders))
	assert.Len(t, aliceOrders, 2)

	rec = api.do(t, http.MethodGet, "/api/orders/my-orders", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bobOrders []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bobOrders))
	assert.Empty(t, bobOrders)
}

func TestOrderHandler_All_AdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, userToken := api.registerUser(t, "alice", user.RoleStandard)
	_, adminToken := api.registerUser(t, "root", user.RoleAdministrator)

	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodGet, "/api/orders", userToken, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/orders", adminToken, nil).Code)
}

func TestProductHandler_MutationsAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, userToken := api.registerUser(t, "alice", user.RoleStandard)
	_, adminToken := api.registerUser(t, "root", user.RoleAdministrator)

	body := gin.H{"name": "Desk", "price": "120.00", "quantity": 3}

	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodPost, "/api/products", userToken, body).Code)

	rec := api.do(t, http.MethodPost, "/api/products", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Everyone authenticated can browse.
	rec = api.do(t, http.MethodGet, "/api/products", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestProductHandler_SearchFilters(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.registerUser(t, "alice", user.RoleStandard)
	api.addProduct(t, "Gaming Laptop", "1500.00", 2)
	api.addProduct(t, "Office Laptop", "700.00", 0)
	api.addProduct(t, "Mouse", "20.00", 50)

	rec := api.do(t, http.MethodGet, "/api/products?name=laptop&available=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Gaming Laptop", resp[0].Name)
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "dave",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "dave",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "USER", resp.Role)

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "dave",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
