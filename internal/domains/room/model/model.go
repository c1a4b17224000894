package model

import (
	"slices"
	"strings"

	"hotel/shared/failure"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldType      = "type"
	FieldPrice     = "price"
	FieldCapacity  = "capacity"
	FieldStatus    = "status"
	FieldAmenities = "amenities"
	FieldImage     = "image"
)

const (
	TypeSingle = "single"
	TypeDouble = "double"
	TypeDeluxe = "deluxe"
	TypeSuite  = "suite"

	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

const (
	MessageNotFound        = "Room not found"
	MessageDeleted         = "Room deleted successfully"
	MessageInvalidType     = "Type must be one of: single, double, deluxe, suite"
	MessageInvalidStatus   = "Status must be one of: available, occupied, maintenance"
	MessageInvalidPrice    = "Price must be a positive number"
	MessageInvalidCapacity = "Capacity must be a positive number"
	MessageNumberRequired  = "Room number is required"
)

var (
	Types    = []string{TypeSingle, TypeDouble, TypeDeluxe, TypeSuite}
	Statuses = []string{StatusAvailable, StatusOccupied, StatusMaintenance}
)

type Room struct {
	ID        string         `db:"id"        bson:"_id"`
	Number    string         `db:"number"    bson:"number"`
	Type      string         `db:"type"      bson:"type"`
	Price     float64        `db:"price"     bson:"price"`
	Capacity  int            `db:"capacity"  bson:"capacity"`
	Status    string         `db:"status"    bson:"status"`
	Amenities pq.StringArray `db:"amenities" bson:"amenities"`
	Image     string         `db:"image"     bson:"image"`
	model.Timestamps `bson:",inline"`
}

// Validate checks the stored form of a room.
func (r *Room) Validate() error {
	switch {
	case strings.TrimSpace(r.Number) == "":
		return failure.BadRequestFromString(MessageNumberRequired)
	case !slices.Contains(Types, r.Type):
		return failure.BadRequestFromString(MessageInvalidType)
	case r.Price < 0:
		return failure.BadRequestFromString(MessageInvalidPrice)
	case r.Capacity < 1:
		return failure.BadRequestFromString(MessageInvalidCapacity)
	case !slices.Contains(Statuses, r.Status):
		return failure.BadRequestFromString(MessageInvalidStatus)
	}

	return nil
}
