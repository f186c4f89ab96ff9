package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbickford/accounts-service/internal/accounts/domain"
	"github.com/mbickford/accounts-service/internal/accounts/repository"
	commoncrypto "github.com/mbickford/accounts-service/internal/common/crypto"
	"github.com/mbickford/accounts-service/internal/common/logger"
	"github.com/mbickford/accounts-service/internal/common/token"
)

type AuthService struct {
	repo   repository.Repository
	hasher commoncrypto.PasswordHasher
	codec  *token.Codec
	log    *logger.Logger
}

func NewAuthService(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	codec *token.Codec,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		codec:  codec,
		log:    log,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	User        domain.User
}

// Authenticate looks the user up by username and checks the password against
// the stored hash. Unknown user and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	incrementLogins()

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		incrementLoginsFailed()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_failed",
		}).Warnf("login failed: %v", err)
		return LoginResult{}, err
	}

	accessToken, err := s.codec.Issue(token.Claims{"sub": user.Username})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	incrementAccessTokensIssued()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{AccessToken: accessToken, User: user}, nil
}

// Signup hashes the password and asks the store to create the user. Duplicate
// usernames are reported by the store's unique constraint, not checked here.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	incrementSignups()

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameAlreadyExists) {
			incrementSignupConflicts()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "signup_username_exists",
			}).Warn("signup failed: username already exists")
			return domain.User{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"action":   "signup_success",
	}).Info("signup success")

	return user, nil
}

// ResolveIdentity turns a raw token into the user it names. Every failure
// mode returns ErrUnauthenticated; callers must not learn which step broke.
func (s *AuthService) ResolveIdentity(ctx context.Context, rawToken string) (domain.User, error) {
	incrementIdentityResolutions()

	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		incrementIdentityResolutionsFailed()
		return domain.User{}, ErrUnauthenticated
	}

	sub, ok := token.Subject(claims)
	if !ok {
		incrementIdentityResolutionsFailed()
		return domain.User{}, ErrUnauthenticated
	}

	user, err := s.repo.GetByUsername(ctx, sub)
	if err != nil {
		// Covers a validly signed token for a since-deleted user.
		incrementIdentityResolutionsFailed()
		return domain.User{}, ErrUnauthenticated
	}

	return user, nil
}

// ValidateToken answers only "is this signature valid"; it applies none of
// the subject or user-existence checks ResolveIdentity does.
func (s *AuthService) ValidateToken(rawToken string) (token.Claims, error) {
	incrementTokenValidations()

	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		incrementTokenValidationsFailed()
		return nil, err
	}

	return claims, nil
}
