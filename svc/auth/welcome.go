package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filesmanager/pkg/email"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

// Queue holds welcome jobs.
const Queue = "users"

// WelcomeJob asks the worker to greet a newly registered user.
type WelcomeJob struct {
	UserID string `json:"userId"`
}

// WelcomeProcessor handles WelcomeJob.
type WelcomeProcessor struct {
	users  UserStore
	sender email.EmailSender
	logger *slog.Logger
}

func NewWelcomeProcessor(users UserStore, sender email.EmailSender, log *slog.Logger) *WelcomeProcessor {
	if log == nil {
		log = logger.Discard()
	}
	return &WelcomeProcessor{users: users, sender: sender, logger: log}
}

// Handler registers the processor with a queue worker.
func (p *WelcomeProcessor) Handler() queue.Handler {
	return queue.NewTaskHandler(p.Process)
}

func (p *WelcomeProcessor) Process(ctx context.Context, job WelcomeJob) error {
	if job.UserID == "" {
		return ErrMissingUserID
	}
	u, err := p.users.FindUserByID(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	msg, err := email.Welcome(u.Email)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	if err := p.sender.SendEmail(ctx, msg); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "Welcome "+u.Email+"!",
		logger.UserID(u.ID),
		logger.Component("welcome"),
	)
	return nil
}
