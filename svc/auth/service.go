package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/pkg/session"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

// UserStore is the subset of the record store the service needs.
type UserStore interface {
	InsertUser(ctx context.Context, u *store.User) error
	FindUserByEmail(ctx context.Context, email string) (*store.User, error)
	FindUserByID(ctx context.Context, id string) (*store.User, error)
}

// Sessions issues and resolves tokens; *session.Manager implements it.
type Sessions interface {
	Issue(ctx context.Context, userID string) (*session.Session, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Enqueuer schedules background jobs; *queue.Enqueuer implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any, opts ...queue.EnqueueOption) error
}

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Service struct {
	users    UserStore
	sessions Sessions
	jobs     Enqueuer
	hasher   Hasher
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h Hasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

func NewService(users UserStore, sessions Sessions, jobs Enqueuer, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		jobs:     jobs,
		hasher:   NewBcryptHasher(0),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and schedules the welcome email. A failure to
// schedule is logged and does not fail registration.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	if email == "" {
		return nil, MissingFieldError{Field: "email"}
	}
	if password == "" {
		return nil, MissingFieldError{Field: "password"}
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &store.User{Email: email, PasswordHash: digest}
	if err := s.users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.jobs != nil {
		if err := s.jobs.Enqueue(ctx, WelcomeJob{UserID: u.ID},
			queue.WithQueue(Queue),
			queue.WithPriority(queue.PriorityLow),
			queue.WithMaxRetries(0),
		); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue welcome job",
				logger.UserID(u.ID),
				logger.Error(err),
				logger.Component("auth"),
			)
		}
	}

	return &User{ID: u.ID, Email: u.Email}, nil
}

// Login verifies a Basic Authorization header and returns a new session
// token. Every credential failure is ErrUnauthorized.
func (s *Service) Login(ctx context.Context, authorization string) (string, error) {
	email, password, ok := parseBasic(authorization)
	if !ok || email == "" {
		return "", ErrUnauthorized
	}

	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return "", ErrUnauthorized
	}

	sess, err := s.sessions.Issue(ctx, u.ID)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return sess.Token, nil
}

// ResolveToken returns the user id bound to token, or "" when the token is
// unknown or expired.
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// Logout revokes token. A token whose user no longer exists is rejected
// and left in place.
func (s *Service) Logout(ctx context.Context, token string) error {
	userID, err := s.ResolveToken(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrUnauthorized
	}
	if _, err := s.lookup(ctx, userID); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, token)
}

// Me returns the account behind userID.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	u, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &User{ID: u.ID, Email: u.Email}, nil
}

func (s *Service) lookup(ctx context.Context, userID string) (*store.User, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
