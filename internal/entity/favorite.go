package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved business. Its lifetime is independent of
// the referenced business; a dangling reference is simply skipped when the
// favorites list is joined against stored businesses.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
