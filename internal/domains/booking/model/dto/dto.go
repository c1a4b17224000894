package dto

import (
	"errors"
	"strings"
	"time"

	"hotel/internal/domains/booking/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/repository"
	"hotel/shared/timezone"
)

const (
	EventCreated = "booking.created"
	EventUpdated = "booking.updated"
	EventDeleted = "booking.deleted"
)

var errInvalidDates = errors.New(model.MessageInvalidDates)

type CreateBookingRequest struct {
	GuestID    string   `json:"guestId"    validate:"required,notblank,objectid" message:"Invalid ID format"`
	RoomID     string   `json:"roomId"     validate:"required,notblank,objectid" message:"Invalid ID format"`
	CheckIn    string   `json:"checkIn"    validate:"required,notblank,isodate"`
	CheckOut   string   `json:"checkOut"   validate:"required,notblank,isodate"`
	TotalPrice *float64 `json:"totalPrice" validate:"required,gt=0"              message:"Total price must be a positive number"`
	Status     *string  `json:"status"     validate:"omitnil,oneof=pending confirmed checked-in completed cancelled" message:"Status must be one of: pending, confirmed, checked-in, completed, cancelled"`
	Notes      *string  `json:"notes"`
}

// Validate checks the date order once both dates are known to parse.
func (c *CreateBookingRequest) Validate() error {
	checkIn, _ := timezone.ParseDate(strings.TrimSpace(c.CheckIn))
	checkOut, _ := timezone.ParseDate(strings.TrimSpace(c.CheckOut))

	if !checkOut.After(checkIn) {
		return errInvalidDates
	}

	return nil
}

func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	checkIn, err := timezone.ParseDate(strings.TrimSpace(c.CheckIn))
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := timezone.ParseDate(strings.TrimSpace(c.CheckOut))
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != nil {
		status = *c.Status
	}

	notes := constant.Empty
	if c.Notes != nil {
		notes = *c.Notes
	}

	booking := model.Booking{
		ID:         repository.NewID(),
		GuestID:    strings.ToLower(strings.TrimSpace(c.GuestID)),
		RoomID:     strings.ToLower(strings.TrimSpace(c.RoomID)),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		TotalPrice: *c.TotalPrice,
		Notes:      notes,
	}
	booking.Touch(timezone.Now())

	return booking, nil
}

// UpdateBookingRequest only carries supplied fields; nil means unchanged.
type UpdateBookingRequest struct {
	GuestID    *string  `json:"guestId"    validate:"omitnil,objectid" message:"Invalid ID format"`
	RoomID     *string  `json:"roomId"     validate:"omitnil,objectid" message:"Invalid ID format"`
	CheckIn    *string  `json:"checkIn"    validate:"omitnil,isodate"`
	CheckOut   *string  `json:"checkOut"   validate:"omitnil,isodate"`
	TotalPrice *float64 `json:"totalPrice" validate:"omitnil,gt=0"     message:"Total price must be a positive number"`
	Status     *string  `json:"status"     validate:"omitnil,oneof=pending confirmed checked-in completed cancelled" message:"Status must be one of: pending, confirmed, checked-in, completed, cancelled"`
	Notes      *string  `json:"notes"`
}

// Validate checks the date order when both dates are supplied.
func (u *UpdateBookingRequest) Validate() error {
	if u.CheckIn == nil || u.CheckOut == nil {
		return nil
	}

	checkIn, _ := timezone.ParseDate(strings.TrimSpace(*u.CheckIn))
	checkOut, _ := timezone.ParseDate(strings.TrimSpace(*u.CheckOut))

	if !checkOut.After(checkIn) {
		return errInvalidDates
	}

	return nil
}

// Apply merges the request into booking and returns the changed columns.
func (u *UpdateBookingRequest) Apply(booking *model.Booking) (map[string]any, error) {
	mod := map[string]any{}

	if u.GuestID != nil {
		booking.GuestID = strings.ToLower(strings.TrimSpace(*u.GuestID))
		mod[model.FieldGuestID] = booking.GuestID
	}

	if u.RoomID != nil {
		booking.RoomID = strings.ToLower(strings.TrimSpace(*u.RoomID))
		mod[model.FieldRoomID] = booking.RoomID
	}

	if u.CheckIn != nil {
		checkIn, err := timezone.ParseDate(strings.TrimSpace(*u.CheckIn))
		if err != nil {
			return nil, err
		}

		booking.CheckIn = checkIn
		mod[model.FieldCheckIn] = checkIn
	}

	if u.CheckOut != nil {
		checkOut, err := timezone.ParseDate(strings.TrimSpace(*u.CheckOut))
		if err != nil {
			return nil, err
		}

		booking.CheckOut = checkOut
		mod[model.FieldCheckOut] = checkOut
	}

	if u.Status != nil {
		booking.Status = *u.Status
		mod[model.FieldStatus] = booking.Status
	}

	if u.TotalPrice != nil {
		booking.TotalPrice = *u.TotalPrice
		mod[model.FieldTotalPrice] = booking.TotalPrice
	}

	if u.Notes != nil {
		booking.Notes = *u.Notes
		mod[model.FieldNotes] = booking.Notes
	}

	booking.UpdatedAt = timezone.Now()
	mod[constant.FieldUpdatedAt] = booking.UpdatedAt

	return mod, nil
}

// BookingResponse renders a booking with its references either as ids or expanded records.
// An expanded reference to a deleted record is null.
type BookingResponse[G, R any] struct {
	ID         string    `json:"_id"`
	GuestID    G         `json:"guestId"`
	RoomID     R         `json:"roomId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	Notes      string    `json:"notes"`
	gModel.Timestamps
}

type (
	BookingRecord   = BookingResponse[string, string]
	BookingDetail   = BookingResponse[*guestDto.GuestResponse, *roomDto.RoomResponse]
	BookingListItem = BookingResponse[*guestDto.GuestSummary, *roomDto.RoomSummary]
	GuestBooking    = BookingResponse[string, *roomDto.RoomResponse]
)

func NewBookingResponse[G, R any](booking model.Booking, guest G, room R) BookingResponse[G, R] {
	return BookingResponse[G, R]{
		ID:         booking.ID,
		GuestID:    guest,
		RoomID:     room,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice,
		Notes:      booking.Notes,
		Timestamps: booking.Timestamps,
	}
}

func NewBookingRecord(booking model.Booking) BookingRecord {
	return NewBookingResponse(booking, booking.GuestID, booking.RoomID)
}

type GetBookingsResponse struct {
	Bookings   []BookingListItem `json:"bookings"`
	Pagination *gDto.Pagination  `json:"pagination"`
}

// Event is published for every booking write.
type Event struct {
	Type       string        `json:"type"`
	Booking    BookingRecord `json:"booking"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func NewEvent(eventType string, booking model.Booking) Event {
	return Event{
		Type:       eventType,
		Booking:    NewBookingRecord(booking),
		OccurredAt: timezone.Now(),
	}
}
