package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
	"github.com/mattn/go-sqlite3"
)

// CreateUser inserts a new account. A taken email yields repository.ErrAlreadyExists.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	const opn = "repository.sqlite.CreateUser"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, hashed_password, company_name, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Email, user.HashedPassword, user.CompanyName, user.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%s: %w", opn, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// GetUserByEmail returns the account registered with email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const opn = "repository.sqlite.GetUserByEmail"

	row := r.db.QueryRowContext(ctx,
		"SELECT id, email, hashed_password, company_name, created_at FROM users WHERE email = ?", email)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return user, nil
}

// GetUserByID returns the account with the given id.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const opn = "repository.sqlite.GetUserByID"

	row := r.db.QueryRowContext(ctx,
		"SELECT id, email, hashed_password, company_name, created_at FROM users WHERE id = ?", id)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.CompanyName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}
