package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	intdb "wedding/internal/db"
	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

const guestColumns = `id,
	full_name,
	COALESCE(title,'') AS title,
	COALESCE(phone,'') AS phone,
	COALESCE(email,'') AS email,
	COALESCE(address,'') AS address,
	created_at,
	updated_at`

// GuestRepository stores the guest directory in the guests table.
type GuestRepository struct {
	DB *sqlx.DB
}

var _ domain.GuestRepository = GuestRepository{}

func (r GuestRepository) Create(ctx context.Context, g models.Guest) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO guests (id, full_name, title, phone, email, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.FullName,
		intdb.NullIfEmpty(g.Title), intdb.NullIfEmpty(g.Phone),
		intdb.NullIfEmpty(g.Email), intdb.NullIfEmpty(g.Address),
		g.CreatedAt, g.UpdatedAt,
	)
	if isDuplicate(err) {
		return domain.ConflictError{Resource: "guest", Msg: "id already exists", Err: err}
	}
	if err != nil {
		return fmt.Errorf("insert guest: %w", err)
	}
	return nil
}

// List returns guests ordered by name. A non-empty query matches name,
// phone or email.
func (r GuestRepository) List(ctx context.Context, query string) ([]models.Guest, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + guestColumns + ` FROM guests`
	args := []any{}
	if strings.TrimSpace(query) != "" {
		like := intdb.LikePattern(query)
		q += ` WHERE full_name LIKE ? OR phone LIKE ? OR email LIKE ?`
		args = append(args, like, like, like)
	}
	q += ` ORDER BY full_name ASC, id ASC`

	out := []models.Guest{}
	if err := db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return out, nil
}

func (r GuestRepository) Get(ctx context.Context, id string) (models.Guest, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.Guest{}, err
	}

	var g models.Guest
	err = db.GetContext(ctx, &g, `SELECT `+guestColumns+` FROM guests WHERE id=? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Guest{}, domain.NotFoundError{Resource: "guest", ID: id, Err: err}
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

// Update overwrites every mutable field of the guest.
func (r GuestRepository) Update(ctx context.Context, g models.Guest) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE guests
		SET full_name=?, title=?, phone=?, email=?, address=?, updated_at=?
		WHERE id=?`,
		g.FullName,
		intdb.NullIfEmpty(g.Title), intdb.NullIfEmpty(g.Phone),
		intdb.NullIfEmpty(g.Email), intdb.NullIfEmpty(g.Address),
		g.UpdatedAt, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 when nothing changed; tell that apart from a missing row.
		if _, err := r.Get(ctx, g.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r GuestRepository) Delete(ctx context.Context, id string) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM guests WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "guest", ID: id}
	}
	return nil
}
