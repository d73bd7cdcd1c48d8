package presentation

import (
	"context"

	"chore-rooms/internal/domain"
)

// DeleteFunc deletes a room.
type DeleteFunc func(ctx context.Context, room domain.Room) error

// DeleteViewModel backs the delete confirmation sheet.
type DeleteViewModel struct {
	room   domain.Room
	source RoomSource
	delete DeleteFunc
}

// NewDeleteViewModel creates a delete view model for room.
func NewDeleteViewModel(room domain.Room, source RoomSource, deleteRoom DeleteFunc) *DeleteViewModel {
	return &DeleteViewModel{room: room, source: source, delete: deleteRoom}
}

// Room returns the room to delete
func (vm *DeleteViewModel) Room() domain.Room {
	return vm.room
}

// TaskList returns the tasks deleted along with the room
func (vm *DeleteViewModel) TaskList() []domain.RoomTask {
	return vm.room.Tasks
}

// CanDelete reports whether the user has edit permission
func (vm *DeleteViewModel) CanDelete() bool {
	return vm.source.User().HasEditPermission
}

// NoTasks reports whether the room has no tasks to delete with it
func (vm *DeleteViewModel) NoTasks() bool {
	return len(vm.room.Tasks) == 0
}

func (vm *DeleteViewModel) DeleteButtonText() string {
	if vm.NoTasks() {
		return "Delete Room"
	}
	return "Delete Room & Tasks"
}

func (vm *DeleteViewModel) NoPermissionText() string {
	return "You do not have permission to delete this room. Please ask a house admin to perform the delete."
}

// DeleteRoom deletes the room
func (vm *DeleteViewModel) DeleteRoom(ctx context.Context) error {
	return vm.delete(ctx, vm.room)
}
