package domain

import (
	"sort"
	"strings"

	"wedding/internal/domain/models"
)

// KHRPerUSD is the fixed rate used to express riel amounts in dollars.
const KHRPerUSD = 4000.0

// FilterAll disables the category or currency filter.
const FilterAll = "All"

type LedgerFilter struct {
	Category string `form:"category" json:"category"`
	Currency string `form:"currency" json:"currency"`
	Search   string `form:"q" json:"q"`
}

type CategoryTotal struct {
	Category models.Category `json:"category"`
	TotalUSD float64         `json:"totalUSD"`
	Count    int             `json:"count"`
}

type LedgerSummary struct {
	Records []models.GuestPayment `json:"records"`

	TotalUSD float64 `json:"totalUSD"`
	TotalKHR float64 `json:"totalKHR"`
	AvgUSD   float64 `json:"avgUSD"`
	AvgKHR   float64 `json:"avgKHR"`
	CountUSD int     `json:"countUSD"`
	CountKHR int     `json:"countKHR"`

	// Categories is ordered by normalized total, highest first; equal
	// totals keep the order in which the category was first seen.
	Categories  []CategoryTotal `json:"categories"`
	TopCategory models.Category `json:"topCategory"`

	GrandTotalUSD float64 `json:"grandTotalUSD"`
}

// NormalizeToUSD converts amount to dollars using KHRPerUSD.
func NormalizeToUSD(amount float64, currency models.Currency) float64 {
	if currency == models.KHR {
		return amount / KHRPerUSD
	}
	return amount
}

// categoryOf buckets uncategorized payments under Other.
func categoryOf(p models.GuestPayment) models.Category {
	if p.Category == "" {
		return models.CategoryOther
	}
	return p.Category
}

func (f LedgerFilter) matches(p models.GuestPayment) bool {
	if c := strings.TrimSpace(f.Category); c != "" && c != FilterAll {
		if !strings.EqualFold(string(categoryOf(p)), c) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Currency); c != "" && c != FilterAll {
		if !strings.EqualFold(string(p.Currency), c) {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Location), q)
}

// FilterPayments returns the records matching f, keeping input order.
func FilterPayments(payments []models.GuestPayment, f LedgerFilter) []models.GuestPayment {
	out := make([]models.GuestPayment, 0, len(payments))
	for _, p := range payments {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Summarize filters payments and derives the ledger totals from the result.
func Summarize(payments []models.GuestPayment, f LedgerFilter) LedgerSummary {
	records := FilterPayments(payments, f)
	sum := LedgerSummary{Records: records, Categories: []CategoryTotal{}}

	index := map[models.Category]int{}
	for _, p := range records {
		switch p.Currency {
		case models.USD:
			sum.TotalUSD += p.Amount
			sum.CountUSD++
		case models.KHR:
			sum.TotalKHR += p.Amount
			sum.CountKHR++
		}

		cat := categoryOf(p)
		i, ok := index[cat]
		if !ok {
			i = len(sum.Categories)
			index[cat] = i
			sum.Categories = append(sum.Categories, CategoryTotal{Category: cat})
		}
		sum.Categories[i].TotalUSD += NormalizeToUSD(p.Amount, p.Currency)
		sum.Categories[i].Count++
	}

	if sum.CountUSD > 0 {
		sum.AvgUSD = sum.TotalUSD / float64(sum.CountUSD)
	}
	if sum.CountKHR > 0 {
		sum.AvgKHR = sum.TotalKHR / float64(sum.CountKHR)
	}

	sort.SliceStable(sum.Categories, func(a, b int) bool {
		return sum.Categories[a].TotalUSD > sum.Categories[b].TotalUSD
	})
	if len(sum.Categories) > 0 {
		sum.TopCategory = sum.Categories[0].Category
	}

	sum.GrandTotalUSD = sum.TotalUSD + sum.TotalKHR/KHRPerUSD
	return sum
}
