package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mbickford/accounts-service/internal/accounts/domain"
	"github.com/mbickford/accounts-service/internal/accounts/repository"
	"github.com/mbickford/accounts-service/internal/accounts/service"
	"github.com/mbickford/accounts-service/internal/common/logger"
	"github.com/mbickford/accounts-service/internal/common/token"
)

const testSecret = "test-secret-key-of-sufficient-len"

func setupAuthService(t *testing.T) (*service.AuthService, *mockRepo, *mockHasher, *token.Codec) {
	t.Helper()

	repo := &mockRepo{}
	hasher := &mockHasher{}
	codec := token.NewCodec(testSecret)

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	return service.NewAuthService(repo, hasher, codec, log), repo, hasher, codec
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		if username != "alice" {
			t.Errorf("expected username alice, got %s", username)
		}
		return domain.User{ID: 1, Username: "alice", PasswordHash: "hashed_pw", Email: "alice@example.com"}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		if hash != "hashed_pw" || password != "secretpassword" {
			return errors.New("password mismatch")
		}
		return nil
	}

	user, err := svc.Authenticate(context.Background(), "alice", "secretpassword")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{}, repository.ErrUserNotFound
	}

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever12")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{ID: 1, Username: "alice", PasswordHash: "hashed_pw"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, err := svc.Authenticate(context.Background(), "alice", "wrongpassword")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UniformFailure(t *testing.T) {
	// Unknown user and wrong password must produce the identical error.
	svc, repo, hasher, _ := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{}, repository.ErrUserNotFound
	}
	_, errUnknown := svc.Authenticate(context.Background(), "nobody", "password123")

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{ID: 1, Username: "alice", PasswordHash: "hashed_pw"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}
	_, errWrongPw := svc.Authenticate(context.Background(), "alice", "password123")

	if !errors.Is(errUnknown, service.ErrInvalidCredentials) || !errors.Is(errWrongPw, service.ErrInvalidCredentials) {
		t.Errorf("expected uniform ErrInvalidCredentials, got %v and %v", errUnknown, errWrongPw)
	}
}

func TestAuthService_Login_IssuesTokenWithSubject(t *testing.T) {
	svc, repo, _, codec := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{ID: 1, Username: "alice", PasswordHash: "hashed_pw"}, nil
	}

	result, err := svc.Login(context.Background(), "alice", "secretpassword")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected access token to be set")
	}

	claims, err := codec.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if sub, ok := token.Subject(claims); !ok || sub != "alice" {
		t.Errorf("expected sub alice, got %q", sub)
	}
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	var created domain.User
	repo.createFunc = func(ctx context.Context, user domain.User) (domain.User, error) {
		created = user
		user.ID = 7
		return user, nil
	}

	user, err := svc.Signup(context.Background(), service.SignupInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "plaintext-pw",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.PasswordHash != "hashed:plaintext-pw" {
		t.Errorf("expected hashed password to reach the store, got %q", created.PasswordHash)
	}
	if created.PasswordHash == "plaintext-pw" {
		t.Error("plaintext password must never reach the store")
	}
	if user.ID != 7 {
		t.Errorf("expected created user id 7, got %d", user.ID)
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user domain.User) (domain.User, error) {
		return domain.User{}, repository.ErrUsernameAlreadyExists
	}

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Username: "bob",
		Password: "plaintext-pw",
	})
	if !errors.Is(err, repository.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestAuthService_ResolveIdentity_Success(t *testing.T) {
	svc, repo, _, codec := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		if username != "alice" {
			t.Errorf("expected lookup of alice, got %s", username)
		}
		return domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil
	}

	tok, err := codec.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	user, err := svc.ResolveIdentity(context.Background(), tok)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %s", user.Username)
	}
}

func TestAuthService_ResolveIdentity_BadSignature(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	foreign := token.NewCodec("another-secret-key-entirely-okay")
	tok, err := foreign.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.ResolveIdentity(context.Background(), tok)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResolveIdentity_MissingSubject(t *testing.T) {
	svc, _, _, codec := setupAuthService(t)

	tok, err := codec.Issue(token.Claims{"role": "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.ResolveIdentity(context.Background(), tok)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResolveIdentity_DeletedUser(t *testing.T) {
	// A validly signed token whose subject no longer exists is rejected the
	// same way as a bad token.
	svc, repo, _, codec := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{}, repository.ErrUserNotFound
	}

	tok, err := codec.Issue(token.Claims{"sub": "ghost"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.ResolveIdentity(context.Background(), tok)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, _, _, codec := setupAuthService(t)

	tok, err := codec.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub, _ := token.Subject(claims); sub != "alice" {
		t.Errorf("expected sub alice, got %q", sub)
	}

	foreign := token.NewCodec("another-secret-key-entirely-okay")
	badTok, err := foreign.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.ValidateToken(badTok); !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestAuthService_ValidateToken_NoUserExistenceCheck(t *testing.T) {
	// Unlike ResolveIdentity, ValidateToken never consults the store.
	svc, repo, _, codec := setupAuthService(t)

	repo.getByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		t.Error("store must not be consulted for signature-only validation")
		return domain.User{}, repository.ErrUserNotFound
	}

	tok, err := codec.Issue(token.Claims{"sub": "ghost"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.ValidateToken(tok); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
