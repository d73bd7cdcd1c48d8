package presentation

import (
	"context"
	"fmt"

	"chore-rooms/internal/domain"

	"github.com/google/uuid"
)

const personalRoomShareHint = "If you would like this room to be shared with your household, tap the 'X' in the top right corner, then tap the Household section of the selector at the top of the Room List View, THEN tap the '+' button to add a House Room."

// DetailViewModel backs the create/edit room sheet.
type DetailViewModel struct {
	room     domain.Room
	source   RoomSource
	delegate DetailDelegate
	newID    func() string
}

// NewDetailViewModel creates a detail view model for room.
func NewDetailViewModel(room domain.Room, delegate DetailDelegate, source RoomSource) *DetailViewModel {
	return &DetailViewModel{
		room:     room,
		source:   source,
		delegate: delegate,
		newID:    uuid.NewString,
	}
}

// Room returns the room being edited
func (vm *DetailViewModel) Room() domain.Room {
	return vm.room
}

// SetName updates the name of the room being edited
func (vm *DetailViewModel) SetName(name string) {
	vm.room.Name = name
}

// IsNewRoom reports whether the room has not been saved yet
func (vm *DetailViewModel) IsNewRoom() bool {
	return vm.room.IsNew()
}

func (vm *DetailViewModel) IsPersonal() bool {
	return vm.room.IsPersonal
}

func (vm *DetailViewModel) IsGuest() bool {
	return vm.source.User().IsGuest()
}

// CanAddRoom reports whether a new house room fits under the tier limit.
// Personal rooms and existing rooms are never limited.
func (vm *DetailViewModel) CanAddRoom() bool {
	if !vm.IsNewRoom() || vm.IsPersonal() {
		return true
	}
	return vm.source.User().CanAddHouseRoom(len(vm.source.HouseSection().Rooms))
}

// CanSave reports whether the room has a name
func (vm *DetailViewModel) CanSave() bool {
	return vm.room.Name != ""
}

// Title is the sheet heading. It names the tier limit when a new house room
// does not fit.
func (vm *DetailViewModel) Title() string {
	if !vm.CanAddRoom() {
		return "You've reached your house-room limit."
	}
	if vm.IsNewRoom() {
		return "What would you like to call your new room?"
	}
	return "Declare the new name of your room!"
}

// Message says who can see the room, or how to make space for it when the
// tier limit is reached.
func (vm *DetailViewModel) Message() string {
	if vm.IsPersonal() {
		return vm.personalRoomMessage()
	}
	return vm.houseRoomMessage()
}

// TextFieldPrompt is the placeholder of the name field
func (vm *DetailViewModel) TextFieldPrompt() string {
	if vm.IsNewRoom() {
		return "New Room Name..."
	}
	return vm.room.Name
}

// SaveRoom creates the room under a fresh id when it has none, and updates it otherwise.
func (vm *DetailViewModel) SaveRoom(ctx context.Context) error {
	if vm.IsNewRoom() {
		room := vm.room
		room.ID = vm.newID()
		return vm.delegate.SaveNewRoom(ctx, room)
	}
	return vm.delegate.UpdateRoom(ctx, vm.room)
}

func (vm *DetailViewModel) houseRoomMessage() string {
	if !vm.CanAddRoom() {
		action := "upgrade to iCleanMePro"
		if vm.IsGuest() {
			action = "create an account by adding linking to a sign-in method (Settings > Profile)"
		}
		return fmt.Sprintf("In order to add more rooms, %s, or delete another room to make space for a new one.", action)
	}
	if vm.IsNewRoom() {
		return "This will be a HOUSEHOLD Room. It will be available to EVERYONE in your household."
	}
	return "This is a HOUSEHOLD Room. It is available to EVERYONE in your household."
}

func (vm *DetailViewModel) personalRoomMessage() string {
	if vm.IsNewRoom() {
		return "This will be a PERSONAL Room. It will NOT be available to anyone but you.\n\n" + personalRoomShareHint
	}
	return "This is a PERSONAL Room. It is NOT available to anyone but you."
}
