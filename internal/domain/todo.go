package domain

import "time"

type Todo struct {
	ID         int64     `db:"id" json:"id"`
	Task       string    `db:"task" json:"task"`
	IsComplete bool      `db:"is_complete" json:"is_complete"`
	ImageURL   *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TodoPatch carries a partial update: nil fields keep their current value.
type TodoPatch struct {
	Task       *string
	IsComplete *bool
	ImageURL   *string
}
