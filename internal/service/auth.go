package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/capturedesk/capturedesk/internal/auth"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers unknown tenant key, inactive tenant,
	// unknown email, and wrong password alike; callers must present all of
	// them identically.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCompanyTaken       = errors.New("company name already registered")
)

type AuthService struct {
	tenants    domain.TenantStore
	users      domain.UserStore
	tokens     *auth.TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(tenants domain.TenantStore, users domain.UserStore, tokens *auth.TokenIssuer, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{
		tenants:    tenants,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

type RegisterInput struct {
	CompanyName string
	Email       string
	Password    string
	FirstName   string
	LastName    string
}

type RegisterResult struct {
	TenantID  string `json:"tenantId"`
	TenantKey string `json:"tenantKey"`
}

// Register creates the tenant and its founding admin user atomically. The
// tenant key is the slug of the company name and doubles as the uniqueness
// check: a taken name surfaces as ErrCompanyTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		TenantKey: Slugify(in.CompanyName),
		Name:      in.CompanyName,
		Plan:      domain.PlanStarter,
		Active:    true,
	}
	owner := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleAdmin,
	}

	if err := s.tenants.CreateWithOwner(ctx, tenant, owner); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrCompanyTaken
		}
		return nil, err
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("tenant_key", tenant.TenantKey))

	return &RegisterResult{
		TenantID:  tenant.ID.String(),
		TenantKey: tenant.TenantKey,
	}, nil
}

type LoginInput struct {
	Email     string
	Password  string
	TenantKey string
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	tenant, err := s.tenants.GetByKey(ctx, in.TenantKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !tenant.Active {
		s.logger.Warn("login attempt against inactive tenant", zap.String("tenant_key", tenant.TenantKey))
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, tenant.ID, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}

	// Best effort; a failed timestamp update must not fail the login.
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &LoginResult{Token: token, User: user}, nil
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives the tenant key from a company name: "Acme Corp" becomes
// "acme-corp".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
