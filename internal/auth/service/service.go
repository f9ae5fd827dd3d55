// Package service authenticates office staff and manages their sessions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"barangay/internal/audit"
	"barangay/internal/auth/models"
	"barangay/internal/auth/token"
	"barangay/internal/platform/middleware"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/sentinel"
	"barangay/pkg/requestcontext"
)

const DefaultSessionTTL = 8 * time.Hour

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service handles login, logout and token validation.
type Service struct {
	admins     AdminStore
	sessions   SessionStore
	tokens     *token.Service
	sessionTTL time.Duration
	logger     *slog.Logger
	publisher  AuditPublisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.sessionTTL = ttl
	}
}

// New constructs a Service.
func New(admins AdminStore, sessions SessionStore, tokens *token.Service, opts ...Option) *Service {
	s := &Service{
		admins:     admins,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: DefaultSessionTTL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginResult carries the issued token back to the client.
type LoginResult struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	AdminID     uuid.UUID `json:"admin_id"`
	DisplayName string    `json:"display_name"`
}

// Login verifies credentials and opens a session. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "username and password are required")
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "failed login attempt", "username", username)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open session")
	}

	signed, err := s.tokens.Generate(admin.ID, session.ID, s.sessionTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.emit(ctx, audit.Event{
		AdminID: admin.ID.String(),
		Action:  audit.ActionAdminLogin,
		Subject: session.ID.String(),
	})
	return &LoginResult{
		Token:       signed,
		ExpiresAt:   session.ExpiresAt,
		AdminID:     admin.ID,
		DisplayName: admin.DisplayName,
	}, nil
}

// Logout closes the session carried by the request context.
func (s *Service) Logout(ctx context.Context) error {
	sessionID, err := uuid.Parse(requestcontext.SessionID(ctx))
	if err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to close session")
	}
	s.emit(ctx, audit.Event{
		AdminID: requestcontext.AdminID(ctx),
		Action:  audit.ActionAdminLogout,
		Subject: sessionID.String(),
	})
	return nil
}

// ValidateToken implements middleware.TokenValidator: the signature must
// verify and the referenced session must still be open.
func (s *Service) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	session, err := s.sessions.Find(context.Background(), sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session is closed")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.Expired(time.Now()) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session has expired")
	}
	return &middleware.TokenClaims{
		AdminID:   claims.AdminID,
		SessionID: claims.SessionID,
	}, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	s.logger.InfoContext(ctx, event.Action,
		"admin_id", event.AdminID, "subject", event.Subject, "log_type", "audit")
	if s.publisher != nil {
		s.publisher.Emit(ctx, event)
	}
}
