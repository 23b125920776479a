// Package auth issues bearer tokens for freelancers who present valid credentials.
package auth

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"strings" // Input trimming
	"sync"    // One-time dummy hash
	"time"    // Token lifetime

	"freelancer_directory/internal/domain" // Importing domain models
	"freelancer_directory/internal/utils"  // Password and JWT helpers

	"github.com/samber/oops"     // Structured errors
	"github.com/sirupsen/logrus" // Logging
)

// Limiter throttles failed logins per username
type Limiter interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RegisterFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthResult is returned by Authenticate. A zero value means the login failed.
type AuthResult struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // Seconds until the token expires
}

// OK reports whether a token was issued
func (r AuthResult) OK() bool {
	return r.AccessToken != ""
}

// Service authenticates freelancers against the repository
type Service struct {
	repo    domain.FreelancerRepository
	tokens  utils.TokenOptions
	limiter Limiter // Optional
}

// NewService creates an auth service. limiter may be nil to disable throttling.
func NewService(repo domain.FreelancerRepository, tokens utils.TokenOptions, limiter Limiter) *Service {
	return &Service{repo: repo, tokens: tokens, limiter: limiter}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// compareDummy spends the same bcrypt work as a real comparison so unknown usernames are not faster
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("dummy-password-for-timing")
	})
	utils.CheckPassword(dummyHash, password)
}

// Authenticate verifies the credentials and issues a token.
// Bad credentials yield a zero AuthResult and a nil error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return AuthResult{}, nil
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allowed(ctx, username)
		if err != nil {
			// Fail open when the limiter is down
			logrus.WithError(err).Warn("Login limiter unavailable")
		} else if !allowed {
			return AuthResult{}, oops.Code("LOGIN_THROTTLED").With("username", username).Wrap(domain.ErrTooManyAttempts)
		}
	}

	f, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		compareDummy(password)
		s.registerFailure(ctx, username)
		return AuthResult{}, nil
	}
	if err != nil {
		return AuthResult{}, oops.Code("LOGIN_LOOKUP_FAILED").With("username", username).Wrap(err)
	}

	if !f.HasPassword() || !utils.CheckPassword(*f.Password, password) {
		if !f.HasPassword() {
			compareDummy(password)
		}
		s.registerFailure(ctx, username)
		return AuthResult{}, nil
	}

	res, err := s.Issue(f)
	if err != nil {
		return AuthResult{}, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			logrus.WithError(err).Warn("Failed to reset login limiter")
		}
	}
	return res, nil
}

// Issue creates a token for an already verified freelancer, such as one that just signed up
func (s *Service) Issue(f *domain.Freelancer) (AuthResult, error) {
	token, expiresAt, err := utils.GenerateJWT(f.ID, f.Username, f.Role(), s.tokens)
	if err != nil {
		return AuthResult{}, oops.Code("TOKEN_ISSUE_FAILED").With("id", f.ID).Wrap(err)
	}
	return AuthResult{
		ID:          f.ID,
		Username:    f.Username,
		AccessToken: token,
		ExpiresIn:   int64(time.Until(expiresAt).Round(time.Second) / time.Second),
	}, nil
}

func (s *Service) registerFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RegisterFailure(ctx, username); err != nil {
		logrus.WithError(err).Warn("Failed to record login failure")
	}
}
