package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/config"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/middleware"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessSlug    string `json:"business_slug" binding:"required"`
	BusinessPhone   string `json:"business_phone"`
	BusinessAddress string `json:"business_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register opens a new business together with its owner account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	slug, err := validators.NormalizeSlug(req.BusinessSlug)
	if err != nil {
		writeError(c, h.log, "register_failed", err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, h.log, "failed_to_hash_password", err)
		return
	}

	business := models.Business{
		Name:    strings.TrimSpace(req.BusinessName),
		Slug:    slug,
		Phone:   req.BusinessPhone,
		Address: req.BusinessAddress,
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleOwner,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlugExists
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEmailExists
		}

		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		user.BusinessID = business.ID
		return tx.Omit("Business").Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = errSlugExists
	}
	if err != nil {
		writeError(c, h.log, "failed_to_register", err)
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, business.ID, user.Role, time.Now())
	if err != nil {
		writeError(c, h.log, "failed_to_generate_token", err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(&user, &business, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Business").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
			return
		}
		writeError(c, h.log, "login_failed", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.BusinessID, user.Role, time.Now())
	if err != nil {
		writeError(c, h.log, "failed_to_generate_token", err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(&user, &user.Business, token))
}

func sessionResponse(user *models.User, business *models.Business, token string) gin.H {
	return gin.H{
		"user":     userView(user),
		"business": businessView(business),
		"token":    token,
	}
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"phone":       user.Phone,
		"role":        user.Role,
		"business_id": user.BusinessID,
	}
}

func businessView(b *models.Business) gin.H {
	return gin.H{
		"id":                  b.ID,
		"name":                b.Name,
		"slug":                b.Slug,
		"phone":               b.Phone,
		"address":             b.Address,
		"min_advance_minutes": b.MinAdvanceMinutes,
		"slot_step_minutes":   b.SlotStepMinutes,
	}
}
