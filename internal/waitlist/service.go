package waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SignupRequest is the raw signup input from the API or CLI.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	SourceURL string `json:"url,omitempty" validate:"omitempty,url"`
}

// Service collects waitlist signups. Persistence and notification are both
// best effort: only validation failures abort a signup.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	validate *validator.Validate
}

// NewService builds a Service. store and notifier may be nil, in which case
// the corresponding step is skipped.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(),
	}
}

// Signup validates req, then persists and announces the signup. Store and
// notifier failures are logged and swallowed so a signup never fails once
// the input is valid. A duplicate email counts as success.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Signup, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.SourceURL = strings.TrimSpace(req.SourceURL)

	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Message: validationMessage(err)}
	}

	signup := &Signup{
		Email:     req.Email,
		SourceURL: req.SourceURL,
		CreatedAt: time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveSignup(ctx, signup); err != nil {
			if errors.Is(err, ErrDuplicateEmail) {
				s.logger.Info("duplicate waitlist signup",
					zap.String("email", signup.Email))
			} else {
				s.logger.Error("failed to persist waitlist signup",
					zap.String("email", signup.Email),
					zap.Error(err))
			}
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySignup(ctx, *signup); err != nil {
			s.logger.Error("failed to deliver signup notification",
				zap.String("email", signup.Email),
				zap.Error(err))
		}
	}

	s.logger.Info("waitlist signup collected", zap.String("email", signup.Email))
	return signup, nil
}

// validationMessage maps a validator error to the client-facing text.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Email":
			return "A valid email address is required"
		case "SourceURL":
			return "Invalid source URL"
		}
	}
	return "Invalid signup request"
}
