package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthcrm/healthcrm-api/internal/config"
	"github.com/healthcrm/healthcrm-api/internal/domain"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type AuthHandler struct {
	svc       *service.AuthService
	cookie    config.JWTConfig
	secureTLS bool
}

func NewAuthHandler(svc *service.AuthService, jwtCfg config.JWTConfig, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: jwtCfg, secureTLS: secureCookies}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required"`
	FullName        string `json:"fullName" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.svc.Register(c.Request.Context(), &service.RegisterCommand{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toUserResponse(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	u, token, expiresAt, err := h.svc.Login(c.Request.Context(), &service.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.setAuthCookie(c, token, time.Until(expiresAt))
	respondOK(c, toUserResponse(u))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setAuthCookie(c, "", -time.Hour)
	respondOK(c, gin.H{"message": "logged out"})
}

// Check reports whether the request carries a valid session; used by the
// frontend on load.
func (h *AuthHandler) Check(c *gin.Context) {
	claims := claimsFrom(c)
	respondOK(c, gin.H{
		"authenticated": true,
		"email":         claims.Email,
		"roles":         claims.Roles,
	})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	claims := claimsFrom(c)

	u, err := h.svc.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toUserResponse(u))
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respondOK(c, out)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AuthHandler) ChangeRole(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req changeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.ChangeRole(c.Request.Context(), id, req.Role, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "role": req.Role})
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := claimsFrom(c)
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "password changed"})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureTLS,
		SameSite: http.SameSiteLaxMode,
	})
}
