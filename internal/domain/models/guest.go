package models

import "time"

// Guest is one entry of the invitation directory.
type Guest struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"fullName"`
	Title     string    `db:"title" json:"title,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DisplayName prefixes the honorific when one is set.
func (g Guest) DisplayName() string {
	if g.Title == "" {
		return g.FullName
	}
	return g.Title + " " + g.FullName
}
