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

type UserHandler struct {
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
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

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		helper.SendError(c, apperrors.Unauthenticated("authentication required"))
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), identity.ID, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
