package sqlite

import "time"

// Room is a row of the rooms table
type Room struct {
	ID         string
	Name       string
	IsPersonal bool
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Task is a row of the tasks table. Tasks are ordered by Position within their room.
type Task struct {
	ID          string
	RoomID      string
	Name        string
	IsClean     bool
	HasReminder bool
	Position    int
	CreatedAt   time.Time
}
