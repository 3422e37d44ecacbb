package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "github.com/mohammedyahyaa/ECommerceTask/internal/application/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

type UserHandler struct {
	users *appuser.Service
}

func NewUserHandler(users *appuser.Service) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	u, err := h.users.Update(c.Request.Context(), c.Param("id"), appuser.UpdateCommand{
		Username: req.Username,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) List(c *gin.Context) {
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(all))
	for _, u := range all {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}
