package presentation

import (
	"context"
	"sync"

	"chore-rooms/internal/domain"
)

// MainViewModel owns the single presented route of the room feature.
// CRUD calls go to the RoomDelegate; the route is cleared only when the
// delegate succeeds, and delegate errors are returned unchanged.
type MainViewModel struct {
	delegate  RoomDelegate
	taskLists TaskListPresenter

	mu    sync.RWMutex
	route domain.NavRoute
}

// NewMainViewModel creates a router with no route presented.
func NewMainViewModel(delegate RoomDelegate, taskLists TaskListPresenter) *MainViewModel {
	return &MainViewModel{
		delegate:  delegate,
		taskLists: taskLists,
	}
}

// Route returns the presented route, or nil when nothing is presented
func (vm *MainViewModel) Route() domain.NavRoute {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.route
}

// DismissRoute clears the route without saving anything
func (vm *MainViewModel) DismissRoute() {
	vm.setRoute(nil)
}

func (vm *MainViewModel) setRoute(route domain.NavRoute) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.route = route
}

// ShowEditRoom presents the detail sheet for an existing room
func (vm *MainViewModel) ShowEditRoom(room domain.Room) {
	vm.setRoute(domain.DetailRoute{Target: domain.ExistingRoomTarget{Room: room}})
}

// ShowDeleteRoom presents the delete sheet
func (vm *MainViewModel) ShowDeleteRoom(room domain.Room) {
	vm.setRoute(domain.DeleteRoute{Room: room})
}

// ShowAddRoom presents the detail sheet for a new empty room
func (vm *MainViewModel) ShowAddRoom(isPersonal bool) {
	vm.setRoute(domain.DetailRoute{Target: domain.NewRoomTarget{Room: domain.NewRoom("", isPersonal)}})
}

// ShowReorderRooms presents the reorder sheet for a section
func (vm *MainViewModel) ShowReorderRooms(section domain.RoomSection) {
	vm.setRoute(domain.ReorderRoute{Section: section})
}

// ShowTasks hands the matching task list to the presenter. The route is untouched.
func (vm *MainViewModel) ShowTasks(room domain.Room) {
	vm.taskLists.ShowTaskList(domain.TaskListTypeForRoom(room))
}

// UpdateRoom saves an edited room
func (vm *MainViewModel) UpdateRoom(ctx context.Context, room domain.Room) error {
	if err := vm.delegate.UpdateRoom(ctx, room); err != nil {
		return err
	}
	vm.DismissRoute()
	return nil
}

// SaveNewRoom saves a room that already carries its new id
func (vm *MainViewModel) SaveNewRoom(ctx context.Context, room domain.Room) error {
	if err := vm.delegate.SaveNewRoom(ctx, room); err != nil {
		return err
	}
	vm.DismissRoute()
	return nil
}

// DeleteRoom deletes a room
func (vm *MainViewModel) DeleteRoom(ctx context.Context, room domain.Room) error {
	if err := vm.delegate.DeleteRoom(ctx, room); err != nil {
		return err
	}
	vm.DismissRoute()
	return nil
}

// SaveNewOrder saves the room order of a section
func (vm *MainViewModel) SaveNewOrder(ctx context.Context, section domain.RoomSection) error {
	if err := vm.delegate.SaveNewOrder(ctx, section.Rooms, section.IsPersonal()); err != nil {
		return err
	}
	vm.DismissRoute()
	return nil
}
