package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/service"
)

type AuthHandler struct {
	svc        *service.AuthService
	limiter    middleware.RequestLimiter
	loginLimit int
}

func NewAuthHandler(svc *service.AuthService, limiter middleware.RequestLimiter, loginLimit int) *AuthHandler {
	return &AuthHandler{svc: svc, limiter: limiter, loginLimit: loginLimit}
}

type registerRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := []string{}
	for field, value := range map[string]string{
		"companyName": req.CompanyName,
		"email":       req.Email,
		"password":    req.Password,
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "Missing required fields", missing)
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if service.Slugify(req.CompanyName) == "" {
		writeError(w, http.StatusBadRequest, "Company name is invalid")
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterInput{
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyTaken) {
			writeError(w, http.StatusBadRequest, "Company name already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	TenantKey string `json:"tenantKey"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.TenantKey == "" {
		writeError(w, http.StatusBadRequest, "email, password and tenantKey are required")
		return
	}

	// A second limiter keyed by the submitted email bounds credential
	// stuffing spread across source addresses.
	emailKey := "email:" + strings.ToLower(strings.TrimSpace(req.Email))
	if allowed, err := h.limiter.Check(r.Context(), emailKey, "login", h.loginLimit); err == nil && !allowed {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	result, err := h.svc.Login(r.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		TenantKey: req.TenantKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User: loginUser{
			ID:        result.User.ID.String(),
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Role:      result.User.Role,
		},
	})
}
