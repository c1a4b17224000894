// Package timezone holds the application location set from APP_TIMEZONE.
//
// Timestamps written by the API (createdAt, updatedAt) are taken from Now. Booking dates
// are different: a calendar day or a timestamp without an offset is read as UTC, so a
// stored check-in never depends on where the server runs.
package timezone
