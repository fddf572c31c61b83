package services

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
	"wedding/internal/metrics"
	"wedding/internal/utils"
)

// SessionEventKind tells subscribers what happened to a session.
type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

type SessionEvent struct {
	Kind SessionEventKind
	User models.User
	At   time.Time
}

// SessionProvider exposes the signed-in user to handlers and lets
// components react to sign-in/sign-out.
type SessionProvider interface {
	CurrentUser(ctx context.Context) (models.User, bool)
	Subscribe(fn func(SessionEvent)) (unsubscribe func())
}

type userCtxKey struct{}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService signs hosts in with email/password and issues HS256 tokens.
type AuthService struct {
	Users  domain.UserRepository
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
	subs    map[int]func(SessionEvent)
	nextSub int
}

var _ SessionProvider = (*AuthService)(nil)

func NewAuthService(users domain.UserRepository, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		Users:   users,
		Secret:  []byte(secret),
		TTL:     ttl,
		revoked: map[string]time.Time{},
		subs:    map[int]func(SessionEvent){},
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

// SignIn checks the credentials and returns a signed token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", models.User{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if domain.IsNotFound(err) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", models.User{}, errBadCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", models.User{}, errBadCredentials
	}
	if !u.Active() {
		return "", models.User{}, domain.UnauthorizedError{Msg: "account disabled"}
	}

	token, err := s.issue(u)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "failed to create token", Err: err}
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	s.publish(SessionEvent{Kind: SessionSignedIn, User: u, At: s.now()})
	return token, u, nil
}

func (s *AuthService) issue(u models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *AuthService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "invalid or expired session", Err: err}
	}
	return claims, nil
}

// Authenticate resolves token to a still-active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	u, _, err := s.authenticate(ctx, token)
	return u, err
}

func (s *AuthService) authenticate(ctx context.Context, token string) (models.User, *Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return models.User{}, nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return models.User{}, nil, domain.UnauthorizedError{Msg: "session signed out"}
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.User{}, nil, domain.UnauthorizedError{Msg: "invalid session subject", Err: err}
	}
	u, err := s.Users.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		return models.User{}, nil, domain.UnauthorizedError{Msg: "user no longer exists", Err: err}
	}
	if err != nil {
		return models.User{}, nil, err
	}
	if !u.Active() {
		return models.User{}, nil, domain.UnauthorizedError{Msg: "account disabled"}
	}
	return u, claims, nil
}

// SignOut revokes token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	u, claims, err := s.authenticate(ctx, token)
	if err != nil {
		return err
	}

	now := s.now()
	until := now.Add(s.TTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	s.mu.Lock()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = until
	s.mu.Unlock()

	s.publish(SessionEvent{Kind: SessionSignedOut, User: u, At: now})
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(models.User)
	return u, ok
}

func (s *AuthService) Subscribe(fn func(SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *AuthService) publish(ev SessionEvent) {
	s.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// AccountInput describes a dashboard account created by an admin.
type AccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateAccount validates in and stores a new active account.
func (s *AuthService) CreateAccount(ctx context.Context, in AccountInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := utils.NormalizeSpace(in.Name)
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleHost
	}
	switch {
	case name == "":
		return models.User{}, domain.ValidationError{Field: "name", Msg: "is required"}
	case email == "":
		return models.User{}, domain.ValidationError{Field: "email", Msg: "is required"}
	case len(in.Password) < 8:
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	case role != models.RoleAdmin && role != models.RoleHost && role != models.RoleViewer:
		return models.User{}, domain.ValidationError{Field: "role", Msg: "must be admin, host or viewer"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "is not a valid address", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	now := utils.NowUTC()
	u := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent("", "auth", "create_account", "id="+strconv.FormatInt(id, 10)+" role="+role)
	return s.Users.GetByID(ctx, id)
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]models.User, error) {
	return s.Users.List(ctx)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	now := utils.NowUTC()
	_, err = s.Users.Create(ctx, models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	var conflict domain.ConflictError
	if errors.As(err, &conflict) {
		return nil
	}
	if err != nil {
		return err
	}
	utils.LogEvent("", "auth", "ensure_admin", "created admin "+email)
	return nil
}
