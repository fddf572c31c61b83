package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

type memGuests struct {
	mu   sync.Mutex
	rows map[string]models.Guest
}

func newMemGuests(seed ...models.Guest) *memGuests {
	m := &memGuests{rows: map[string]models.Guest{}}
	for _, g := range seed {
		m.rows[g.ID] = g
	}
	return m
}

func (m *memGuests) Create(_ context.Context, g models.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[g.ID]; ok {
		return domain.ConflictError{Resource: "guest", Msg: "duplicate id"}
	}
	m.rows[g.ID] = g
	return nil
}

func (m *memGuests) List(_ context.Context, query string) ([]models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Guest{}
	for _, g := range m.rows {
		if q == "" || strings.Contains(strings.ToLower(g.FullName), q) ||
			strings.Contains(g.Phone, q) || strings.Contains(strings.ToLower(g.Email), q) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *memGuests) Get(_ context.Context, id string) (models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.rows[id]
	if !ok {
		return models.Guest{}, domain.NotFoundError{Resource: "guest", ID: id}
	}
	return g, nil
}

func (m *memGuests) Update(_ context.Context, g models.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[g.ID]; !ok {
		return domain.NotFoundError{Resource: "guest", ID: g.ID}
	}
	m.rows[g.ID] = g
	return nil
}

func (m *memGuests) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.NotFoundError{Resource: "guest", ID: id}
	}
	delete(m.rows, id)
	return nil
}

// memPayments keeps insertion order, newest first like the SQL repository.
type memPayments struct {
	mu   sync.Mutex
	rows []models.GuestPayment
}

func (m *memPayments) Create(_ context.Context, p models.GuestPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]models.GuestPayment{p}, m.rows...)
	return nil
}

func (m *memPayments) List(context.Context) ([]models.GuestPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.GuestPayment(nil), m.rows...), nil
}

func (m *memPayments) index(id string) int {
	for i, p := range m.rows {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *memPayments) Get(_ context.Context, id string) (models.GuestPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		return m.rows[i], nil
	}
	return models.GuestPayment{}, domain.NotFoundError{Resource: "payment", ID: id}
}

func (m *memPayments) Update(_ context.Context, p models.GuestPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(p.ID)
	if i < 0 {
		return domain.NotFoundError{Resource: "payment", ID: p.ID}
	}
	m.rows[i] = p
	return nil
}

func (m *memPayments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return domain.NotFoundError{Resource: "payment", ID: id}
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	rows []models.User
}

func (m *memUsers) Create(_ context.Context, u models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email {
			return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
	}
	u.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, u)
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == strings.ToLower(strings.TrimSpace(email)) {
			return r, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user", ID: email}
}

func (m *memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *memUsers) List(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.rows...), nil
}
