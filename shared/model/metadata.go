package model

import "time"

// Timestamps is embedded by every stored entity.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}

// Touch sets both timestamps for a new record.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	t.UpdatedAt = now
}
