package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	intdb "wedding/internal/db"
	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

const paymentColumns = `id,
	name,
	COALESCE(category,'') AS category,
	COALESCE(location,'') AS location,
	payment_method,
	currency,
	amount,
	COALESCE(note,'') AS note,
	created_at,
	updated_at`

// PaymentRepository stores tie-money entries in guest_payments.
type PaymentRepository struct {
	DB *sqlx.DB
}

var _ domain.PaymentRepository = PaymentRepository{}

func (r PaymentRepository) Create(ctx context.Context, p models.GuestPayment) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO guest_payments
			(id, name, category, location, payment_method, currency, amount, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name,
		intdb.NullIfEmpty(string(p.Category)), intdb.NullIfEmpty(p.Location),
		p.PaymentMethod, string(p.Currency), p.Amount,
		intdb.NullIfEmpty(p.Note),
		p.CreatedAt, p.UpdatedAt,
	)
	if isDuplicate(err) {
		return domain.ConflictError{Resource: "payment", Msg: "id already exists", Err: err}
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List returns every ledger entry, newest first.
func (r PaymentRepository) List(ctx context.Context) ([]models.GuestPayment, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}

	out := []models.GuestPayment{}
	err = db.SelectContext(ctx, &out, `SELECT `+paymentColumns+` FROM guest_payments ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return out, nil
}

func (r PaymentRepository) Get(ctx context.Context, id string) (models.GuestPayment, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.GuestPayment{}, err
	}

	var p models.GuestPayment
	err = db.GetContext(ctx, &p, `SELECT `+paymentColumns+` FROM guest_payments WHERE id=? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GuestPayment{}, domain.NotFoundError{Resource: "payment", ID: id, Err: err}
	}
	if err != nil {
		return models.GuestPayment{}, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r PaymentRepository) Update(ctx context.Context, p models.GuestPayment) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE guest_payments
		SET name=?, category=?, location=?, payment_method=?, currency=?, amount=?, note=?, updated_at=?
		WHERE id=?`,
		p.Name,
		intdb.NullIfEmpty(string(p.Category)), intdb.NullIfEmpty(p.Location),
		p.PaymentMethod, string(p.Currency), p.Amount,
		intdb.NullIfEmpty(p.Note),
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.Get(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r PaymentRepository) Delete(ctx context.Context, id string) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM guest_payments WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment", ID: id}
	}
	return nil
}
