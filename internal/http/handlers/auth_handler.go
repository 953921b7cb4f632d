// README: Auth handlers for sign-up, sign-in and password reset.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"eztravel/internal/http/middleware"
	"eztravel/internal/modules/user"
)

type AuthService interface {
	SignUp(ctx context.Context, cmd user.SignUpCommand) (int64, error)
	SignIn(ctx context.Context, cmd user.SignInCommand) (*user.PublicUser, error)
	ResetPassword(ctx context.Context, cmd user.ResetPasswordCommand) error
}

type AuthHandler struct {
	auth AuthService
	log  *slog.Logger
}

func NewAuthHandler(svc AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, log: logger}
}

type signUpReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type signInReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordReq struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if !bindJSON(c, &req) {
		return
	}
	_, err := h.auth.SignUp(detached(c), user.SignUpCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeAuthError(c, "signup", err, "Signup failed")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"success": true})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInReq
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.auth.SignIn(detached(c), user.SignInCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeAuthError(c, "signin", err, "Signin failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "user": u})
}

// ResetPassword handles PUT /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if !bindJSON(c, &req) {
		return
	}
	err := h.auth.ResetPassword(detached(c), user.ResetPasswordCommand{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.writeAuthError(c, "reset password", err, "Password reset failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) writeAuthError(c *gin.Context, op string, err error, fallback string) {
	switch {
	case errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "missing or invalid fields")
	case errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.log.Error(op+" failed", "request_id", middleware.RequestIDFrom(c), "error", err)
		writeError(c, http.StatusInternalServerError, fallback)
	}
}
