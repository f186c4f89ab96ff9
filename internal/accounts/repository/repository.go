package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mbickford/accounts-service/internal/accounts/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create inserts the user and returns it with the generated id. Uniqueness of
// usernames is enforced by the database constraint, not checked up front.
func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash, email) VALUES ($1, $2, $3) RETURNING id`,
		user.Username,
		user.PasswordHash,
		user.Email,
	)

	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *PgRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, email FROM users WHERE username = $1`,
		username,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user by username: %w", err)
	}

	return user, nil
}
