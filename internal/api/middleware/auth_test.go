package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/auth"
	"github.com/capturedesk/capturedesk/internal/domain"
)

func protectedHandler(t *testing.T, want domain.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromContext(r.Context())
		if ident == nil {
			t.Error("identity missing from context")
			return
		}
		if ident.UserID != want.UserID || ident.TenantID != want.TenantID {
			t.Error("identity does not match token")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	ident := domain.Identity{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Email:    "user@example.com",
		Role:     domain.RoleUser,
	}
	token, err := issuer.Issue(ident)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := Authenticate(issuer)(protectedHandler(t, ident))

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("another-secret", time.Hour)

	foreignToken, err := other.Issue(domain.Identity{UserID: uuid.New(), TenantID: uuid.New()})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"malformed", "Bearer"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong signature", "Bearer " + foreignToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler reached without valid token")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthenticate_LowercaseBearer(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	ident := domain.Identity{UserID: uuid.New(), TenantID: uuid.New()}
	token, err := issuer.Issue(ident)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := Authenticate(issuer)(protectedHandler(t, ident))

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
