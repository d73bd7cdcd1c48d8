package presentation

import (
	"context"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
)

// mockRoomDelegate records delegate calls and returns err from each
type mockRoomDelegate struct {
	err error

	updated     []domain.Room
	saved       []domain.Room
	deleted     []domain.Room
	orderRooms  []domain.Room
	orderPerson *bool
}

func (m *mockRoomDelegate) UpdateRoom(ctx context.Context, room domain.Room) error {
	m.updated = append(m.updated, room)
	return m.err
}

func (m *mockRoomDelegate) SaveNewRoom(ctx context.Context, room domain.Room) error {
	m.saved = append(m.saved, room)
	return m.err
}

func (m *mockRoomDelegate) DeleteRoom(ctx context.Context, room domain.Room) error {
	m.deleted = append(m.deleted, room)
	return m.err
}

func (m *mockRoomDelegate) SaveNewOrder(ctx context.Context, rooms []domain.Room, isPersonal bool) error {
	m.orderRooms = rooms
	m.orderPerson = &isPersonal
	return m.err
}

// mockNavHandler records navigation intents
type mockNavHandler struct {
	calls []string
	rooms []domain.Room
}

func (m *mockNavHandler) ShowEditRoom(room domain.Room) {
	m.calls = append(m.calls, "edit")
	m.rooms = append(m.rooms, room)
}

func (m *mockNavHandler) ShowDeleteRoom(room domain.Room) {
	m.calls = append(m.calls, "delete")
	m.rooms = append(m.rooms, room)
}

func (m *mockNavHandler) ShowTasks(room domain.Room) {
	m.calls = append(m.calls, "tasks")
	m.rooms = append(m.rooms, room)
}

func (m *mockNavHandler) ShowAddRoom(isPersonal bool) {
	if isPersonal {
		m.calls = append(m.calls, "add personal")
		return
	}
	m.calls = append(m.calls, "add house")
}

func (m *mockNavHandler) ShowReorderRooms(section domain.RoomSection) {
	m.calls = append(m.calls, "reorder "+section.ID())
}

func makeTask(id string, hasReminder bool) domain.RoomTask {
	return domain.NewRoomTask(id, "task "+id, false, hasReminder)
}

func makeRooms(prefix string, count int, isPersonal bool) []domain.Room {
	rooms := make([]domain.Room, 0, count)
	for i := 0; i < count; i++ {
		id := prefix + string(rune('a'+i))
		rooms = append(rooms, domain.Room{ID: id, Name: "Room " + id, IsPersonal: isPersonal, Tasks: []domain.RoomTask{}})
	}
	return rooms
}

func makeDataSource(tier domain.UserTier, houseRooms int) *datasource.RoomDataSource {
	return datasource.New(domain.NewRoomUser(tier, true),
		domain.NewRoomSection(domain.SectionHouse, makeRooms("h", houseRooms, false)),
		domain.EmptyPersonalSection(),
	)
}
