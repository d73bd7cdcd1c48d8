// Package presentation contains the render-agnostic view models of the room
// feature: the room list, the navigation router and the sheets it presents.
package presentation

import (
	"context"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
)

// NavHandler receives navigation intents from the room list.
type NavHandler interface {
	ShowEditRoom(room domain.Room)
	ShowDeleteRoom(room domain.Room)
	ShowTasks(room domain.Room)
	ShowAddRoom(isPersonal bool)
	ShowReorderRooms(section domain.RoomSection)
}

// RoomDelegate persists room changes on behalf of the feature.
type RoomDelegate interface {
	UpdateRoom(ctx context.Context, room domain.Room) error
	SaveNewRoom(ctx context.Context, room domain.Room) error
	DeleteRoom(ctx context.Context, room domain.Room) error
	SaveNewOrder(ctx context.Context, rooms []domain.Room, isPersonal bool) error
}

// DetailDelegate saves the room edited in the detail sheet.
type DetailDelegate interface {
	UpdateRoom(ctx context.Context, room domain.Room) error
	SaveNewRoom(ctx context.Context, room domain.Room) error
}

// TaskListPresenter shows a task list outside the room feature.
type TaskListPresenter interface {
	ShowTaskList(listType domain.TaskListType)
}

// TaskListPresenterFunc adapts a function to TaskListPresenter.
type TaskListPresenterFunc func(listType domain.TaskListType)

// ShowTaskList calls f(listType).
func (f TaskListPresenterFunc) ShowTaskList(listType domain.TaskListType) {
	f(listType)
}

// RoomSource is the read side of the room data source.
type RoomSource interface {
	User() domain.RoomUser
	HouseSection() domain.RoomSection
	Snapshot() datasource.Snapshot
	Subscribe(fn datasource.Listener) func()
}
