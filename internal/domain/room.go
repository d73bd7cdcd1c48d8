package domain

// Reserved room ids for the synthetic rows at the top of the room list.
// They never belong to a persisted room.
const (
	AllRoomID      = "All"
	ReminderRoomID = "Reminders"
)

// Room represents a room in the domain model.
// An empty ID marks a room that has not been saved yet.
type Room struct {
	ID         string
	Name       string
	IsPersonal bool
	Tasks      []RoomTask
}

// NewRoom creates an unsaved room with the given name.
func NewRoom(name string, isPersonal bool) Room {
	return Room{
		Name:       name,
		IsPersonal: isPersonal,
		Tasks:      []RoomTask{},
	}
}

// IsNew returns true if the room has not been persisted.
func (r Room) IsNew() bool {
	return r.ID == ""
}

// IsSentinel returns true for the synthetic "All" and "Reminders" rows.
func (r Room) IsSentinel() bool {
	return r.ID == AllRoomID || r.ID == ReminderRoomID
}

// DirtyTaskCount returns the number of tasks that still need cleaning.
func (r Room) DirtyTaskCount() int {
	count := 0
	for _, task := range r.Tasks {
		if !task.IsClean {
			count++
		}
	}
	return count
}

// SectionType returns the section a room belongs to.
func (r Room) SectionType() SectionType {
	if r.IsPersonal {
		return SectionPersonal
	}
	return SectionHouse
}

// String returns the room name for display purposes.
func (r Room) String() string {
	return r.Name
}

// RoomTask represents a chore attached to a room.
type RoomTask struct {
	ID          string
	Name        string
	IsClean     bool
	HasReminder bool
}

// NewRoomTask creates a task value.
func NewRoomTask(id, name string, isClean, hasReminder bool) RoomTask {
	return RoomTask{
		ID:          id,
		Name:        name,
		IsClean:     isClean,
		HasReminder: hasReminder,
	}
}

// IsValid checks if the task has valid data.
func (t RoomTask) IsValid() bool {
	return t.ID != "" && t.Name != ""
}
