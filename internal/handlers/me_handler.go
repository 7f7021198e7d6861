package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewMeHandler(db *gorm.DB, log zerolog.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Business").
		Where("id = ? AND business_id = ?", userIDFrom(c), businessIDFrom(c)).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Usuario no encontrado.")
			return
		}
		writeError(c, h.log, "failed_to_get_user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userView(&user),
		"business": businessView(&user.Business),
	})
}
