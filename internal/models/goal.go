package models

import "time"

// Goal represents a fitness goal owned by a single user.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	Reminded    bool      `json:"-"` // set once the due-date reminder fired
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalUpdate carries the mutable fields of a goal. Nil fields are left
// untouched by an update.
type GoalUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// Empty reports whether the update would change nothing.
func (u GoalUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil && u.Completed == nil
}
