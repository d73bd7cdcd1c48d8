package presentation

import (
	"context"

	"chore-rooms/internal/domain"
	apperrors "chore-rooms/internal/errors"
)

// SaveOrderFunc saves a reordered section.
type SaveOrderFunc func(ctx context.Context, section domain.RoomSection) error

// ReorderViewModel holds a working copy of a section's rooms while the
// user rearranges them.
type ReorderViewModel struct {
	sectionType domain.SectionType
	rooms       []domain.Room
	save        SaveOrderFunc
}

// NewReorderViewModel creates a reorder view model for section.
func NewReorderViewModel(section domain.RoomSection, save SaveOrderFunc) *ReorderViewModel {
	return &ReorderViewModel{
		sectionType: section.Type,
		rooms:       section.Clone().Rooms,
		save:        save,
	}
}

// RoomList returns the working order
func (vm *ReorderViewModel) RoomList() []domain.Room {
	return append([]domain.Room{}, vm.rooms...)
}

// Move moves the room at index from to index to, shifting the rooms between.
func (vm *ReorderViewModel) Move(from, to int) error {
	if from < 0 || from >= len(vm.rooms) {
		return apperrors.NewInvalidInputError("from", from, "position out of range")
	}
	if to < 0 || to >= len(vm.rooms) {
		return apperrors.NewInvalidInputError("to", to, "position out of range")
	}

	room := vm.rooms[from]
	vm.rooms = append(vm.rooms[:from], vm.rooms[from+1:]...)
	vm.rooms = append(vm.rooms[:to], append([]domain.Room{room}, vm.rooms[to:]...)...)
	return nil
}

// SetOrder replaces the working order with the rooms matching ids.
// ids must name every room of the section exactly once.
func (vm *ReorderViewModel) SetOrder(ids []string) error {
	if len(ids) != len(vm.rooms) {
		return apperrors.NewInvalidInputError("ids", len(ids), "must list every room of the section")
	}

	byID := make(map[string]domain.Room, len(vm.rooms))
	for _, room := range vm.rooms {
		byID[room.ID] = room
	}

	ordered := make([]domain.Room, 0, len(ids))
	for _, id := range ids {
		room, ok := byID[id]
		if !ok {
			return apperrors.NewMissingRoomError(id)
		}
		delete(byID, id)
		ordered = append(ordered, room)
	}

	vm.rooms = ordered
	return nil
}

// SaveChanges saves a section of the same type in the working order
func (vm *ReorderViewModel) SaveChanges(ctx context.Context) error {
	return vm.save(ctx, domain.NewRoomSection(vm.sectionType, vm.RoomList()))
}
