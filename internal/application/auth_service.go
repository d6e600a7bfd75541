package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smarthotel/user-service/internal/domain"
	"github.com/smarthotel/user-service/internal/domain/entity"
	repo "github.com/smarthotel/user-service/internal/domain/repository"
	"github.com/smarthotel/user-service/pkg/helpers"
)

const notifyTimeout = 10 * time.Second

// Service orchestrates registration, email verification and login.
// It owns no state beyond its injected collaborators.
type Service struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Notifier  Notifier
	Logger    *logrus.Logger
	VerifyTTL time.Duration
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, notifier Notifier, logger *logrus.Logger, verifyTTL time.Duration) *Service {
	return &Service{
		Repo:      repo,
		JWT:       jwt,
		Notifier:  notifier,
		Logger:    logger,
		VerifyTTL: verifyTTL,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     entity.Role
}

// dispatch runs fn in the background with its own deadline. Notification
// failures never reach the caller; they are logged and dropped.
func (s *Service) dispatch(name string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := fn(ctx); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("notification", name).Warn("notification dispatch failed")
		}
	}()
}

// Register creates an unverified account and dispatches a verification email.
// Email and username are pre-checked for friendlier conflict reporting, but
// the store's unique constraints remain the final arbiter under races.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.NewConflictError("email")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.NewConflictError("username")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("invalid role")
	}

	token := helpers.GenerateVerificationToken()
	expires := time.Now().Add(s.VerifyTTL)

	u := &entity.User{
		Username:                 in.Username,
		Email:                    in.Email,
		HashedPassword:           hash,
		Role:                     role,
		IsVerified:               false,
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}

	if s.Notifier != nil {
		email, username := u.Email, u.Username
		s.dispatch("verification", func(ctx context.Context) error {
			return s.Notifier.SendVerification(ctx, email, username, token)
		})
	}
	return u, nil
}

// VerifyEmail consumes a verification token and flips the account to
// verified. Expired tokens are rejected but left on the record; only a
// resend replaces them.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("invalid token")
		}
		return nil, err
	}
	if u.IsVerified {
		return nil, domain.NewValidationError("already verified")
	}
	if u.VerificationTokenExpires == nil || time.Now().After(*u.VerificationTokenExpires) {
		return nil, domain.NewValidationError("token expired")
	}

	u.IsVerified = true
	u.VerificationToken = nil
	u.VerificationTokenExpires = nil
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("email verified")
	}

	if s.Notifier != nil {
		email, username := u.Email, u.Username
		s.dispatch("welcome", func(ctx context.Context) error {
			return s.Notifier.SendWelcome(ctx, email, username)
		})
	}
	return u, nil
}

// ResendVerification issues a fresh token for a pending account. The previous
// token becomes permanently invalid.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("user not found")
		}
		return err
	}
	if u.IsVerified {
		return domain.NewValidationError("already verified")
	}

	token := helpers.GenerateVerificationToken()
	expires := time.Now().Add(s.VerifyTTL)
	u.VerificationToken = &token
	u.VerificationTokenExpires = &expires
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if s.Notifier != nil {
		addr, username := u.Email, u.Username
		s.dispatch("verification", func(ctx context.Context) error {
			return s.Notifier.SendVerification(ctx, addr, username, token)
		})
	}
	return nil
}

// Login validates credentials and issues a session token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated;
// the verification gate is reported separately.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", time.Time{}, domain.ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if !u.IsVerified {
		return "", time.Time{}, domain.ErrEmailNotVerified
	}
	if !helpers.CompareHashAndPassword(u.HashedPassword, password) {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("failed login attempt")
		}
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return "", time.Time{}, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user logged in")
	}
	return token, exp, nil
}

// GetProfile returns the account for id.
func (s *Service) GetProfile(ctx context.Context, id int64) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListUsers returns every account. Admin only; enforced at the route.
func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

// DeleteUser removes the target account. Admins may not delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return domain.ErrSelfDelete
	}
	return s.Repo.Delete(ctx, targetID)
}
