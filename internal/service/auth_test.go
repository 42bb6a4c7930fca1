package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/capturedesk/capturedesk/internal/auth"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
)

// mockTenantStore implements domain.TenantStore for testing.
type mockTenantStore struct {
	tenants map[string]*domain.Tenant
	users   map[uuid.UUID][]*domain.User
}

func newMockTenantStore() *mockTenantStore {
	return &mockTenantStore{
		tenants: make(map[string]*domain.Tenant),
		users:   make(map[uuid.UUID][]*domain.User),
	}
}

func (m *mockTenantStore) CreateWithOwner(ctx context.Context, t *domain.Tenant, owner *domain.User) error {
	if _, exists := m.tenants[t.TenantKey]; exists {
		return store.ErrConflict
	}
	t.ID = uuid.New()
	owner.ID = uuid.New()
	owner.TenantID = t.ID
	m.tenants[t.TenantKey] = t
	m.users[t.ID] = append(m.users[t.ID], owner)
	return nil
}

func (m *mockTenantStore) GetByKey(ctx context.Context, key string) (*domain.Tenant, error) {
	t, ok := m.tenants[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

// mockUserStore implements domain.UserStore backed by the tenant store's users.
type mockUserStore struct {
	tenants    *mockTenantStore
	lastTouch  uuid.UUID
	touchErr   error
	touchCount int
}

func (m *mockUserStore) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	for _, u := range m.tenants.users[tenantID] {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	m.lastTouch = id
	m.touchCount++
	return m.touchErr
}

func newAuthService(t *testing.T) (*AuthService, *mockTenantStore, *mockUserStore) {
	t.Helper()
	tenants := newMockTenantStore()
	users := &mockUserStore{tenants: tenants}
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(tenants, users, issuer, bcrypt.MinCost, zap.NewNop())
	return svc, tenants, users
}

func register(t *testing.T, svc *AuthService, company, email, password string) *RegisterResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterInput{
		CompanyName: company,
		Email:       email,
		Password:    password,
		FirstName:   "Pat",
		LastName:    "Jones",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return result
}

func TestAuthService_Register(t *testing.T) {
	svc, tenants, _ := newAuthService(t)

	result := register(t, svc, "Acme Federal Solutions", "pat@acme.example", "hunter2hunter2")

	if result.TenantKey != "acme-federal-solutions" {
		t.Errorf("tenant key = %q, want %q", result.TenantKey, "acme-federal-solutions")
	}

	tenant := tenants.tenants[result.TenantKey]
	if tenant == nil {
		t.Fatal("tenant not created")
	}
	if tenant.Plan != domain.PlanStarter {
		t.Errorf("plan = %q, want %q", tenant.Plan, domain.PlanStarter)
	}
	if !tenant.Active {
		t.Error("new tenant not active")
	}

	owners := tenants.users[tenant.ID]
	if len(owners) != 1 {
		t.Fatalf("owner count = %d, want 1", len(owners))
	}
	owner := owners[0]
	if owner.Role != domain.RoleAdmin {
		t.Errorf("owner role = %q, want %q", owner.Role, domain.RoleAdmin)
	}
	if owner.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
}

func TestAuthService_Register_DuplicateCompany(t *testing.T) {
	svc, _, _ := newAuthService(t)

	register(t, svc, "Acme Corp", "first@acme.example", "hunter2hunter2")

	_, err := svc.Register(context.Background(), RegisterInput{
		CompanyName: "Acme Corp",
		Email:       "second@acme.example",
		Password:    "hunter2hunter2",
		FirstName:   "Sam",
		LastName:    "Lee",
	})
	if !errors.Is(err, ErrCompanyTaken) {
		t.Errorf("err = %v, want ErrCompanyTaken", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, users := newAuthService(t)
	register(t, svc, "Acme Corp", "pat@acme.example", "hunter2hunter2")

	result, err := svc.Login(context.Background(), LoginInput{
		Email:     "pat@acme.example",
		Password:  "hunter2hunter2",
		TenantKey: "acme-corp",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("empty token")
	}
	if result.User.Email != "pat@acme.example" {
		t.Errorf("user email = %q", result.User.Email)
	}
	if users.touchCount != 1 {
		t.Errorf("TouchLastLogin calls = %d, want 1", users.touchCount)
	}
	if users.lastTouch != result.User.ID {
		t.Error("TouchLastLogin called with wrong user id")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, tenants, _ := newAuthService(t)
	register(t, svc, "Acme Corp", "pat@acme.example", "hunter2hunter2")

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Email: "pat@acme.example", Password: "wrong", TenantKey: "acme-corp"}},
		{"unknown email", LoginInput{Email: "nobody@acme.example", Password: "hunter2hunter2", TenantKey: "acme-corp"}},
		{"unknown tenant", LoginInput{Email: "pat@acme.example", Password: "hunter2hunter2", TenantKey: "other-corp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	t.Run("inactive tenant", func(t *testing.T) {
		tenants.tenants["acme-corp"].Active = false
		_, err := svc.Login(context.Background(), LoginInput{
			Email:     "pat@acme.example",
			Password:  "hunter2hunter2",
			TenantKey: "acme-corp",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_Login_TouchFailureIgnored(t *testing.T) {
	svc, _, users := newAuthService(t)
	register(t, svc, "Acme Corp", "pat@acme.example", "hunter2hunter2")

	users.touchErr = errors.New("db unavailable")

	_, err := svc.Login(context.Background(), LoginInput{
		Email:     "pat@acme.example",
		Password:  "hunter2hunter2",
		TenantKey: "acme-corp",
	})
	if err != nil {
		t.Fatalf("Login failed on best-effort timestamp update: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  Acme   Corp  ", "acme-corp"},
		{"Acme & Sons, Inc.", "acme-sons-inc"},
		{"ACME", "acme"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
