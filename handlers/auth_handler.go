package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/helper"
	"github.com/kwesi-koranteng/cityhub-backend/middleware"
	"github.com/kwesi-koranteng/cityhub-backend/models"
	"github.com/kwesi-koranteng/cityhub-backend/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		helper.SendError(c, apperrors.Unauthenticated("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
