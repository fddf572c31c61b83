package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

const userColumns = `id, name, email, password_hash, role, status, created_at, updated_at`

type UserRepository struct {
	DB *sqlx.DB
}

var _ domain.UserRepository = UserRepository{}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	db, err := pick(r.DB)
	if err != nil {
		return 0, err
	}

	res, err := db.NamedExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, status, created_at, updated_at)
		VALUES (:name, :email, :password_hash, :role, :status, :created_at, :updated_at)`, u)
	if isDuplicate(err) {
		return 0, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	err = db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	err = db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
