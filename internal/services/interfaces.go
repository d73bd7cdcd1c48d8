package services

import (
	"context"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/presentation"
)

// RoomService persists room changes and keeps the data source in sync with
// the database. It is the RoomDelegate of the room feature.
type RoomService interface {
	presentation.RoomDelegate

	// Load replaces the data source sections with the stored rooms
	Load(ctx context.Context) error

	// Task operations
	AddTask(ctx context.Context, roomID, name string, hasReminder bool) (domain.RoomTask, error)
	SetTaskClean(ctx context.Context, taskID string, clean bool) (domain.RoomTask, error)
	SetTaskReminder(ctx context.Context, taskID string, hasReminder bool) (domain.RoomTask, error)
	DeleteTask(ctx context.Context, taskID string) error
}
