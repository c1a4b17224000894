package dto

import (
	"strings"

	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/repository"
	"hotel/shared/timezone"
)

type CreateGuestRequest struct {
	Name    string `json:"name"    validate:"required,notblank,mintrim=2" message:"Name must be at least 2 characters"`
	Email   string `json:"email"   validate:"required,notblank,emailaddr" message:"Please provide a valid email address"`
	Phone   string `json:"phone"   validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
}

func (c *CreateGuestRequest) ToModel() model.Guest {
	guest := model.Guest{
		ID:      repository.NewID(),
		Name:    strings.TrimSpace(c.Name),
		Email:   model.NormalizeEmail(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
	guest.Touch(timezone.Now())

	return guest
}

// UpdateGuestRequest only carries supplied fields; nil means unchanged.
type UpdateGuestRequest struct {
	Name    *string `db:"name"    json:"name"    validate:"omitnil,mintrim=2"  message:"Name must be at least 2 characters"`
	Email   *string `db:"email"   json:"email"   validate:"omitnil,emailaddr"  message:"Please provide a valid email address"`
	Phone   *string `db:"phone"   json:"phone"`
	Address *string `db:"address" json:"address"`
}

// Merge normalizes the request and applies it onto guest.
func (u *UpdateGuestRequest) Merge(guest *model.Guest) {
	trim := func(value *string) *string {
		if value == nil {
			return nil
		}

		trimmed := strings.TrimSpace(*value)

		return &trimmed
	}

	u.Name = trim(u.Name)
	u.Phone = trim(u.Phone)
	u.Address = trim(u.Address)

	if u.Email != nil {
		email := model.NormalizeEmail(*u.Email)
		u.Email = &email
		guest.Email = email
	}

	if u.Name != nil {
		guest.Name = *u.Name
	}

	if u.Phone != nil {
		guest.Phone = *u.Phone
	}

	if u.Address != nil {
		guest.Address = *u.Address
	}
}

type GuestResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	gModel.Timestamps
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.Timestamps = model.Timestamps
}

// GuestSummary is the shape of a guest embedded in booking listings.
type GuestSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *GuestSummary) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
}

type GetGuestsResponse struct {
	Guests     []GuestResponse  `json:"guests"`
	Pagination *gDto.Pagination `json:"pagination"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, total int, params gDto.QueryParams) {
	r.Pagination = gDto.NewPagination(total, params)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
