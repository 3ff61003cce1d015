package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-service/internal/adapter/gin/middleware"
	"invoice-service/internal/usecase/auth"
	"invoice-service/pkg/apperrors"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	uc  auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest represents the HTTP request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MessageResponse represents a plain message response
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse represents the HTTP response for a successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

// ProfileResponse represents the HTTP response for a profile lookup
type ProfileResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	_, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  resp.Token,
		UserID: resp.UserID,
	})
}

// GetProfile handles GET /api/auth/profile. The user id comes from the
// verified token claims, never from the request.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized"})
		return
	}

	resp, err := h.uc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// handleError maps usecase errors onto HTTP responses. Domain errors keep
// their message; everything else collapses to a generic 500.
func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var statusErr apperrors.HTTPStatuser
	if errors.As(err, &statusErr) {
		status := statusErr.HTTPStatus()
		if status < http.StatusInternalServerError {
			c.JSON(status, MessageResponse{Message: err.Error()})
			return
		}
	}

	h.log.Error("auth request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: "An unexpected error occurred"})
}
