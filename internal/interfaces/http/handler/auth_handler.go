package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/mohammedyahyaa/ECommerceTask/internal/application/auth"
	appuser "github.com/mohammedyahyaa/ECommerceTask/internal/application/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

type AuthHandler struct {
	auth  *appauth.Service
	users *appuser.Service
}

func NewAuthHandler(auth *appauth.Service, users *appuser.Service) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role := user.RoleStandard
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		role = parsed
	}

	u, err := h.users.Register(c.Request.Context(), appuser.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Username: u.Username,
		Role:     string(u.Role),
	})
}
