package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

var stamp = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestGuestRepository_CreateStoresNullForBlankOptionals(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	mock.ExpectExec("INSERT INTO guests").
		WithArgs("a1b2c3d4e5", "Sok Dara", "Mr.", nil, nil, nil, stamp, stamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Guest{
		ID: "a1b2c3d4e5", FullName: "Sok Dara", Title: "Mr.", CreatedAt: stamp, UpdatedAt: stamp,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGuestRepository_CreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	mock.ExpectExec("INSERT INTO guests").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), models.Guest{ID: "dup", FullName: "X"})
	assert.True(t, domain.IsConflict(err))
}

func TestGuestRepository_ListWithQuery(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	rows := sqlmock.NewRows([]string{"id", "full_name", "title", "phone", "email", "address", "created_at", "updated_at"}).
		AddRow("g1", "Chan Sopheap", "", "012345678", "", "", stamp, stamp)
	mock.ExpectQuery("SELECT .+ FROM guests WHERE full_name LIKE \\? OR phone LIKE \\? OR email LIKE \\?").
		WithArgs("%sop%", "%sop%", "%sop%").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), "sop")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chan Sopheap", list[0].FullName)
	assert.Equal(t, "012345678", list[0].Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGuestRepository_GetMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	mock.ExpectQuery("SELECT .+ FROM guests WHERE id=\\?").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestGuestRepository_UpdateMissingRowIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	mock.ExpectExec("UPDATE guests").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM guests WHERE id=\\?").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Update(context.Background(), models.Guest{ID: "gone", FullName: "A"})
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGuestRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := GuestRepository{DB: db}

	mock.ExpectExec("DELETE FROM guests WHERE id=\\?").WithArgs("g1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM guests WHERE id=\\?").WithArgs("g1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "g1"))
	assert.True(t, domain.IsNotFound(repo.Delete(context.Background(), "g1")))
}

func TestPaymentRepository_CreateThenList(t *testing.T) {
	db, mock := newMock(t)
	repo := PaymentRepository{DB: db}

	p := models.GuestPayment{
		ID:            "7d1f6c8e-0000-4000-8000-000000000001",
		Name:          "Lim Vanna",
		Category:      models.CategoryFamily,
		PaymentMethod: models.MethodCash,
		Currency:      models.KHR,
		Amount:        200000,
		CreatedAt:     stamp,
		UpdatedAt:     stamp,
	}

	mock.ExpectExec("INSERT INTO guest_payments").
		WithArgs(p.ID, p.Name, "Family", nil, "Cash", "KHR", 200000.0, nil, stamp, stamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	cols := []string{"id", "name", "category", "location", "payment_method", "currency", "amount", "note", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .+ FROM guest_payments ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(p.ID, p.Name, "Family", "", "Cash", "KHR", "200000.00", "", stamp, stamp))

	require.NoError(t, repo.Create(context.Background(), p))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p, list[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_GetMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := PaymentRepository{DB: db}

	mock.ExpectQuery("SELECT .+ FROM guest_payments WHERE id=\\?").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "x")
	assert.True(t, domain.IsNotFound(err))
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), models.User{Email: "host@example.com"})
	assert.True(t, domain.IsConflict(err))
}

func TestUserRepository_GetByEmailNormalizes(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db}

	cols := []string{"id", "name", "email", "password_hash", "role", "status", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\?").
		WithArgs("host@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Host", "host@example.com", "hash", "admin", "active", stamp, stamp))

	u, err := repo.GetByEmail(context.Background(), "  Host@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "admin", u.Role)
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db}

	cols := []string{"id", "name", "email", "password_hash", "role", "status", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .+ FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Admin", "admin@example.com", "h1", "admin", "active", stamp, stamp).
			AddRow(2, "Aunt", "aunt@example.com", "h2", "viewer", "active", stamp, stamp))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "viewer", users[1].Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPickWithoutDatabase(t *testing.T) {
	_, err := GuestRepository{}.List(context.Background(), "")
	assert.True(t, domain.IsInternal(err))
}
