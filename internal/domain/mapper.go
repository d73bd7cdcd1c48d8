package domain

import (
	"chore-rooms/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain RoomTasks and database Tasks.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain RoomTask to a database Task owned by roomID.
func (m *TaskMapper) ToDatabase(roomID string, task RoomTask) sqlite.Task {
	return sqlite.Task{
		ID:          task.ID,
		RoomID:      roomID,
		Name:        task.Name,
		IsClean:     task.IsClean,
		HasReminder: task.HasReminder,
	}
}

// FromDatabase converts a database Task to a domain RoomTask.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) RoomTask {
	return NewRoomTask(dbTask.ID, dbTask.Name, dbTask.IsClean, dbTask.HasReminder)
}

// FromDatabaseSlice converts database Tasks to domain RoomTasks, keeping order.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []RoomTask {
	tasks := make([]RoomTask, 0, len(dbTasks))
	for _, task := range dbTasks {
		tasks = append(tasks, m.FromDatabase(*task))
	}
	return tasks
}

// RoomMapper handles conversion between domain Rooms and database Rooms.
type RoomMapper struct {
	tasks *TaskMapper
}

// NewRoomMapper creates a new RoomMapper instance.
func NewRoomMapper() *RoomMapper {
	return &RoomMapper{tasks: NewTaskMapper()}
}

// ToDatabase converts a domain Room to a database Room. Tasks are stored separately.
func (m *RoomMapper) ToDatabase(room Room) sqlite.Room {
	return sqlite.Room{
		ID:         room.ID,
		Name:       room.Name,
		IsPersonal: room.IsPersonal,
	}
}

// FromDatabase converts a database Room and its tasks to a domain Room.
func (m *RoomMapper) FromDatabase(dbRoom sqlite.Room, dbTasks []*sqlite.Task) Room {
	return Room{
		ID:         dbRoom.ID,
		Name:       dbRoom.Name,
		IsPersonal: dbRoom.IsPersonal,
		Tasks:      m.tasks.FromDatabaseSlice(dbTasks),
	}
}

// SectionMapper groups stored rooms into the house and personal sections.
type SectionMapper struct {
	rooms *RoomMapper
}

// NewSectionMapper creates a new SectionMapper instance.
func NewSectionMapper() *SectionMapper {
	return &SectionMapper{rooms: NewRoomMapper()}
}

// FromDatabase builds [house, personal] sections from rooms already sorted by
// position and tasks in position order. Tasks whose room is missing are skipped.
// Both sections are always present, possibly empty.
func (m *SectionMapper) FromDatabase(dbRooms []*sqlite.Room, dbTasks []*sqlite.Task) []RoomSection {
	tasksByRoom := make(map[string][]*sqlite.Task)
	for _, task := range dbTasks {
		tasksByRoom[task.RoomID] = append(tasksByRoom[task.RoomID], task)
	}

	house := EmptyHouseSection()
	personal := EmptyPersonalSection()
	for _, dbRoom := range dbRooms {
		room := m.rooms.FromDatabase(*dbRoom, tasksByRoom[dbRoom.ID])
		if room.IsPersonal {
			personal.Rooms = append(personal.Rooms, room)
		} else {
			house.Rooms = append(house.Rooms, room)
		}
	}

	return []RoomSection{house, personal}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task    *TaskMapper
	Room    *RoomMapper
	Section *SectionMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:    NewTaskMapper(),
		Room:    NewRoomMapper(),
		Section: NewSectionMapper(),
	}
}
