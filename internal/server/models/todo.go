package models

import "time"

// Todo is an owned row with an optional public flag. Non-owners see it only
// when Public is true; only the owner may mutate it.
type Todo struct {
	ID          string
	UserID      string
	Description string
	Public      bool
	CreatedAt   time.Time
}
