package models

import "time"

type Currency string

const (
	USD Currency = "USD"
	KHR Currency = "KHR"
)

// Currencies lists the only two currencies a ledger entry may carry.
var Currencies = []Currency{USD, KHR}

func (c Currency) Valid() bool {
	return c == USD || c == KHR
}

type Category string

const (
	CategoryFamily    Category = "Family"
	CategoryFriend    Category = "Friend"
	CategoryColleague Category = "Colleague"
	CategoryVIP       Category = "VIP"
	CategoryOther     Category = "Other"
)

var Categories = []Category{CategoryFamily, CategoryFriend, CategoryColleague, CategoryVIP, CategoryOther}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

const (
	MethodCash         = "Cash"
	MethodABA          = "ABA"
	MethodACLEDA       = "ACLEDA"
	MethodWing         = "Wing"
	MethodBankTransfer = "Bank Transfer"
	MethodOther        = "Other"
)

var PaymentMethods = []string{MethodCash, MethodABA, MethodACLEDA, MethodWing, MethodBankTransfer, MethodOther}

// GuestPayment is one tie-money ledger entry.
type GuestPayment struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Category      Category  `db:"category" json:"category,omitempty"`
	Location      string    `db:"location" json:"location,omitempty"`
	PaymentMethod string    `db:"payment_method" json:"paymentMethod"`
	Currency      Currency  `db:"currency" json:"currency"`
	Amount        float64   `db:"amount" json:"amount"`
	Note          string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
