package model

import (
	"strings"

	"hotel/shared/failure"
	"hotel/shared/model"
	"hotel/shared/validator"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
)

const (
	MinNameLength = 2

	MessageNotFound     = "Guest not found"
	MessageDeleted      = "Guest deleted successfully"
	MessageInvalidEmail = "Please provide a valid email address"
	MessageShortName    = "Name must be at least 2 characters"
)

type Guest struct {
	ID      string `db:"id"      bson:"_id"`
	Name    string `db:"name"    bson:"name"`
	Email   string `db:"email"   bson:"email"`
	Phone   string `db:"phone"   bson:"phone"`
	Address string `db:"address" bson:"address"`
	model.Timestamps `bson:",inline"`
}

// NormalizeEmail is the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (g *Guest) Validate() error {
	if len([]rune(strings.TrimSpace(g.Name))) < MinNameLength {
		return failure.BadRequestFromString(MessageShortName)
	}

	if !validator.IsEmail(g.Email) {
		return failure.BadRequestFromString(MessageInvalidEmail)
	}

	return nil
}
