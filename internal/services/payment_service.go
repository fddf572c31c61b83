package services

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
	"wedding/internal/metrics"
	"wedding/internal/utils"
)

// PaymentInput is the editable part of a ledger entry.
type PaymentInput struct {
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Location            string   `json:"location"`
	PaymentMethod       string   `json:"paymentMethod"`
	CustomPaymentMethod string   `json:"customPaymentMethod"`
	Currency            string   `json:"currency"`
	Amount              *float64 `json:"amount"`
	Note                string   `json:"note"`
}

// PaymentService manages the tie-money ledger.
type PaymentService struct {
	Repo      domain.PaymentRepository
	Guests    domain.GuestRepository
	RequestID string
	Now       func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func canonicalCategory(v string) (models.Category, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, c := range models.Categories {
		if strings.EqualFold(string(c), v) {
			return c, nil
		}
	}
	return "", domain.ValidationError{Field: "category", Msg: "must be one of Family, Friend, Colleague, VIP, Other"}
}

func canonicalCurrency(v string) (models.Currency, error) {
	v = strings.TrimSpace(v)
	for _, c := range models.Currencies {
		if strings.EqualFold(string(c), v) {
			return c, nil
		}
	}
	return "", domain.ValidationError{Field: "currency", Msg: "must be USD or KHR"}
}

// resolveMethod maps the method onto the fixed list; "Other" with a custom
// value, or any value outside the list, is kept as free text.
func resolveMethod(method, custom string) (string, error) {
	method = utils.NormalizeSpace(method)
	custom = utils.NormalizeSpace(custom)
	if method == "" {
		method = models.MethodCash
	}
	for _, m := range models.PaymentMethods {
		if strings.EqualFold(m, method) {
			method = m
			break
		}
	}
	if method == models.MethodOther && custom != "" {
		method = custom
	}
	if len(method) > 64 {
		return "", domain.ValidationError{Field: "paymentMethod", Msg: "is too long"}
	}
	return method, nil
}

// Column limits of guest_payments: VARCHAR(190) text, TEXT note,
// DECIMAL(18,2) amount.
const (
	maxTextLen = 190
	maxNoteLen = 65535
	maxAmount  = 1e16
)

func (in PaymentInput) apply(p *models.GuestPayment) error {
	name := utils.NormalizeSpace(in.Name)
	if name == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if utf8.RuneCountInString(name) > maxTextLen {
		return domain.ValidationError{Field: "name", Msg: "is too long"}
	}
	location := utils.NormalizeSpace(in.Location)
	if utf8.RuneCountInString(location) > maxTextLen {
		return domain.ValidationError{Field: "location", Msg: "is too long"}
	}
	note := strings.TrimSpace(in.Note)
	if len(note) > maxNoteLen {
		return domain.ValidationError{Field: "note", Msg: "is too long"}
	}
	if in.Amount == nil {
		return domain.ValidationError{Field: "amount", Msg: "is required"}
	}
	amount := *in.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return domain.ValidationError{Field: "amount", Msg: "must be a non-negative number"}
	}
	if amount >= maxAmount {
		return domain.ValidationError{Field: "amount", Msg: "is too large"}
	}
	currency, err := canonicalCurrency(in.Currency)
	if err != nil {
		return err
	}
	category, err := canonicalCategory(in.Category)
	if err != nil {
		return err
	}
	method, err := resolveMethod(in.PaymentMethod, in.CustomPaymentMethod)
	if err != nil {
		return err
	}

	p.Name = name
	p.Category = category
	p.Location = location
	p.PaymentMethod = method
	p.Currency = currency
	p.Amount = math.Round(amount*100) / 100
	p.Note = note
	return nil
}

// ValidateFilter rejects category/currency filters outside the known sets.
func ValidateFilter(f domain.LedgerFilter) (domain.LedgerFilter, error) {
	if c := strings.TrimSpace(f.Category); c != "" && c != domain.FilterAll {
		cat, err := canonicalCategory(c)
		if err != nil {
			return f, err
		}
		f.Category = string(cat)
	}
	if c := strings.TrimSpace(f.Currency); c != "" && c != domain.FilterAll {
		cur, err := canonicalCurrency(c)
		if err != nil {
			return f, err
		}
		f.Currency = string(cur)
	}
	return f, nil
}

func (s PaymentService) List(ctx context.Context, f domain.LedgerFilter) ([]models.GuestPayment, error) {
	f, err := ValidateFilter(f)
	if err != nil {
		return nil, err
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterPayments(all, f), nil
}

// Summary re-reads the ledger and derives totals over the filtered view.
func (s PaymentService) Summary(ctx context.Context, f domain.LedgerFilter) (domain.LedgerSummary, error) {
	f, err := ValidateFilter(f)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	return domain.Summarize(all, f), nil
}

func (s PaymentService) Get(ctx context.Context, id string) (models.GuestPayment, error) {
	return s.Repo.Get(ctx, strings.TrimSpace(id))
}

func (s PaymentService) Create(ctx context.Context, in PaymentInput) (models.GuestPayment, error) {
	now := s.now()
	p := models.GuestPayment{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := in.apply(&p); err != nil {
		return models.GuestPayment{}, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		utils.LogError(s.RequestID, "payment", "create", err)
		return models.GuestPayment{}, err
	}
	metrics.PaymentsRecorded.WithLabelValues(string(p.Currency)).Inc()
	utils.LogEvent(s.RequestID, "payment", "create", "id="+p.ID+" amount="+utils.FormatAmount(p.Amount, string(p.Currency)))
	return s.Repo.Get(ctx, p.ID)
}

func (s PaymentService) Update(ctx context.Context, id string, in PaymentInput) (models.GuestPayment, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return models.GuestPayment{}, err
	}
	if err := in.apply(&p); err != nil {
		return models.GuestPayment{}, err
	}
	p.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, p); err != nil {
		utils.LogError(s.RequestID, "payment", "update", err)
		return models.GuestPayment{}, err
	}
	utils.LogEvent(s.RequestID, "payment", "update", "id="+id)
	return s.Repo.Get(ctx, id)
}

func (s PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payment", "delete", "id="+id)
	return nil
}

// SuggestNames offers guest directory names matching q for the payer field.
// Matching is advisory; payments never reference guests.
func (s PaymentService) SuggestNames(ctx context.Context, q string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []string{}
	if s.Guests == nil || strings.TrimSpace(q) == "" {
		return out, nil
	}
	guests, err := s.Guests.List(ctx, q)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, g := range guests {
		key := strings.ToLower(g.FullName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, g.FullName)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
