package model

import (
	"slices"
	"time"

	"hotel/shared/failure"
	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldGuestID    = "guest_id"
	FieldRoomID     = "room_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldStatus     = "status"
	FieldTotalPrice = "total_price"
	FieldNotes      = "notes"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCheckedIn = "checked-in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	MessageNotFound          = "Booking not found"
	MessageDeleted           = "Booking deleted successfully"
	MessageInvalidDates      = "Check-out date must be after check-in date"
	MessageInvalidStatus     = "Status must be one of: pending, confirmed, checked-in, completed, cancelled"
	MessageInvalidTotalPrice = "Total price must be a positive number"
	MessageNegativeTotal     = "Total price cannot be negative"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled}

// Booking references its guest and room by id only. Neither reference is cascaded.
type Booking struct {
	ID         string    `db:"id"          bson:"_id"`
	GuestID    string    `db:"guest_id"    bson:"guestId"`
	RoomID     string    `db:"room_id"     bson:"roomId"`
	CheckIn    time.Time `db:"check_in"    bson:"checkIn"`
	CheckOut   time.Time `db:"check_out"   bson:"checkOut"`
	Status     string    `db:"status"      bson:"status"`
	TotalPrice float64   `db:"total_price" bson:"totalPrice"`
	Notes      string    `db:"notes"       bson:"notes"`
	model.Timestamps `bson:",inline"`
}

// Validate must hold for every booking that is written.
func (b *Booking) Validate() error {
	if !b.CheckOut.After(b.CheckIn) {
		return failure.BadRequestFromString(MessageInvalidDates)
	}

	if !slices.Contains(Statuses, b.Status) {
		return failure.BadRequestFromString(MessageInvalidStatus)
	}

	if b.TotalPrice < 0 {
		return failure.BadRequestFromString(MessageNegativeTotal)
	}

	return nil
}
