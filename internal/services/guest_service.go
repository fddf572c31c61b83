package services

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
	"wedding/internal/utils"
)

// GuestInput is the full editable record of a guest.
type GuestInput struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// GuestView is a guest plus the personal invitation link.
type GuestView struct {
	models.Guest
	InviteURL string `json:"inviteUrl"`
}

// GuestService handles the guest directory.
type GuestService struct {
	Repo      domain.GuestRepository
	BaseURL   string
	RequestID string
	Now       func() time.Time
}

// NewGuestID returns a 10-character opaque token used in invitation links.
func NewGuestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (s GuestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s GuestService) view(g models.Guest) GuestView {
	return GuestView{Guest: g, InviteURL: InviteURL(s.BaseURL, g.ID)}
}

// InviteURL builds the public link for guestID.
func InviteURL(baseURL, guestID string) string {
	return strings.TrimRight(baseURL, "/") + "/wedding/" + guestID
}

func (in GuestInput) normalize() (GuestInput, error) {
	out := GuestInput{
		FullName: utils.NormalizeSpace(in.FullName),
		Title:    utils.NormalizeSpace(in.Title),
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Address:  strings.TrimSpace(in.Address),
	}
	if out.FullName == "" {
		return out, domain.ValidationError{Field: "fullName", Msg: "is required"}
	}
	if utf8.RuneCountInString(out.FullName) > 190 {
		return out, domain.ValidationError{Field: "fullName", Msg: "is too long"}
	}
	if out.Email != "" {
		if _, err := mail.ParseAddress(out.Email); err != nil {
			return out, domain.ValidationError{Field: "email", Msg: "is not a valid address", Err: err}
		}
	}
	return out, nil
}

func (s GuestService) List(ctx context.Context, query string) ([]GuestView, error) {
	guests, err := s.Repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]GuestView, 0, len(guests))
	for _, g := range guests {
		out = append(out, s.view(g))
	}
	return out, nil
}

func (s GuestService) Get(ctx context.Context, id string) (GuestView, error) {
	g, err := s.Repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return GuestView{}, err
	}
	return s.view(g), nil
}

// Create validates and stores a new guest, then returns the stored record.
func (s GuestService) Create(ctx context.Context, in GuestInput) (GuestView, error) {
	in, err := in.normalize()
	if err != nil {
		return GuestView{}, err
	}

	now := s.now()
	g := models.Guest{
		ID:        NewGuestID(),
		FullName:  in.FullName,
		Title:     in.Title,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		utils.LogError(s.RequestID, "guest", "create", err)
		return GuestView{}, err
	}
	utils.LogEvent(s.RequestID, "guest", "create", "id="+g.ID)
	return s.Get(ctx, g.ID)
}

// Update replaces every editable field of guest id.
func (s GuestService) Update(ctx context.Context, id string, in GuestInput) (GuestView, error) {
	in, err := in.normalize()
	if err != nil {
		return GuestView{}, err
	}

	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return GuestView{}, err
	}
	existing.FullName = in.FullName
	existing.Title = in.Title
	existing.Phone = in.Phone
	existing.Email = in.Email
	existing.Address = in.Address
	existing.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, existing); err != nil {
		utils.LogError(s.RequestID, "guest", "update", err)
		return GuestView{}, err
	}
	utils.LogEvent(s.RequestID, "guest", "update", "id="+id)
	return s.Get(ctx, id)
}

func (s GuestService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "guest", "delete", "id="+id)
	return nil
}
