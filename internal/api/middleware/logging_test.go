package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/capturedesk/capturedesk/internal/auth"
	"github.com/capturedesk/capturedesk/internal/domain"
)

func logFields(t *testing.T, logs *observer.ObservedLogs) map[string]zapcore.Field {
	t.Helper()
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := make(map[string]zapcore.Field)
	for _, f := range entries[0].Context {
		fields[f.Key] = f
	}
	return fields
}

func TestLogging_RecordsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/companies?limit=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fields := logFields(t, logs)
	if fields["method"].String != http.MethodGet {
		t.Errorf("method = %q", fields["method"].String)
	}
	if fields["path"].String != "/api/companies" {
		t.Errorf("path = %q", fields["path"].String)
	}
	if fields["status"].Integer != http.StatusTeapot {
		t.Errorf("status = %d", fields["status"].Integer)
	}
	if _, ok := fields["tenant_id"]; ok {
		t.Error("identity fields present on an unauthenticated request")
	}
}

func TestLogging_RecordsAuthenticatedIdentity(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

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

	handler := Logging(logger)(Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fields := logFields(t, logs)
	if got := fields["tenant_id"].String; got != ident.TenantID.String() {
		t.Errorf("tenant_id = %q, want %q", got, ident.TenantID.String())
	}
	if got := fields["user_id"].String; got != ident.UserID.String() {
		t.Errorf("user_id = %q, want %q", got, ident.UserID.String())
	}
}

func TestLogging_NoIdentityOnRejectedToken(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := Logging(logger)(Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without valid token")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fields := logFields(t, logs)
	if fields["status"].Integer != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", fields["status"].Integer)
	}
	if _, ok := fields["tenant_id"]; ok {
		t.Error("identity fields present on a rejected request")
	}
}
