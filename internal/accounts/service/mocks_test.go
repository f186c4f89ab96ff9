package service_test

import (
	"context"

	"github.com/mbickford/accounts-service/internal/accounts/domain"
	"github.com/mbickford/accounts-service/internal/accounts/repository"
)

type mockRepo struct {
	createFunc        func(ctx context.Context, user domain.User) (domain.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return user, nil
}

func (m *mockRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return domain.User{}, repository.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
