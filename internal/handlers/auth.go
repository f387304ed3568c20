package handlers

import (
	"net/http"
	"strings"
	"time"

	"AuthKit/internal/config"
	"AuthKit/internal/middleware"
	"AuthKit/internal/model"
	"AuthKit/internal/service"

	"go.uber.org/zap"
)

// AuthHandler обслуживает /auth/* и /me.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewAuthHandler(authService *service.AuthService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{AuthService: authService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type codeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type changePasswordRequest struct {
	Code            string `json:"code"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsVerified  bool   `json:"is_verified"`
}

func (h *AuthHandler) result(w http.ResponseWriter, res service.Result, err error) {
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err == nil {
		h.Logger.Infow("user registered", "email", req.Email)
	}
	h.result(w, res, err)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.Verify(r.Context(), req.Email, req.Code)
	h.result(w, res, err)
}

// Login выдаёт пару токенов: в теле access, обе — в httpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}
	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	middleware.SetAuthCookies(w, pair.Access, pair.Refresh,
		time.Duration(h.Config.AccessTokenMin)*time.Minute,
		time.Duration(h.Config.RefreshTokenDay)*24*time.Hour,
	)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: pair.Access, TokenType: "bearer"})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.AuthService.Refresh(r.Context()))
}

func (h *AuthHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.Forgot(r.Context(), req.Email)
	h.result(w, res, err)
}

func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.Reset(r.Context(), req.Email, req.Code, req.NewPassword)
	h.result(w, res, err)
}

func (h *AuthHandler) ResendVerify(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.ResendVerify(r.Context(), req.Email)
	h.result(w, res, err)
}

// currentUser отвечает 401, если запрос не аутентифицирован.
func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return nil, false
	}
	return user, true
}

func (h *AuthHandler) ChangePasswordRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	res, err := h.AuthService.ChangePasswordRequest(r.Context(), user)
	h.result(w, res, err)
}

func (h *AuthHandler) ChangePasswordConfirm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req changePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.AuthService.ChangePasswordConfirm(r.Context(), user, req.Code, req.CurrentPassword, req.NewPassword)
	h.result(w, res, err)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	name, _, _ := strings.Cut(user.Email, "@")
	writeJSON(w, http.StatusOK, meResponse{Email: user.Email, DisplayName: name, IsVerified: user.IsVerified})
}
