package domain

import (
	"context"

	"wedding/internal/domain/models"
)

// GuestRepository is the storage boundary of the guest directory.
type GuestRepository interface {
	Create(ctx context.Context, g models.Guest) error
	List(ctx context.Context, query string) ([]models.Guest, error)
	Get(ctx context.Context, id string) (models.Guest, error)
	Update(ctx context.Context, g models.Guest) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository is the storage boundary of the tie-money ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p models.GuestPayment) error
	List(ctx context.Context) ([]models.GuestPayment, error)
	Get(ctx context.Context, id string) (models.GuestPayment, error)
	Update(ctx context.Context, p models.GuestPayment) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
