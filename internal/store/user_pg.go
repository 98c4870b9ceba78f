package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"TRIPMOA_BACK-END/internal/models"
)

const userColumns = `id, email, password_hash, username, display_name, avatar_url, role, created_at, updated_at`

// pgUserStore is the Postgres implementation of UserStore.
type pgUserStore struct {
	db db
}

// NewUserStore constructs a UserStore backed by the provided db connection.
func NewUserStore(db db) UserStore {
	return &pgUserStore{db: db}
}

func (s *pgUserStore) Create(ctx context.Context, user models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, username, display_name, avatar_url, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.PasswordHash, user.Username, user.DisplayName,
		user.AvatarURL, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store.UserStore.Create: %w", err)
	}
	return nil
}

func (s *pgUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *pgUserStore) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.DisplayName,
		&u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("store: scan user: %w", err)
	}
	return u, nil
}
