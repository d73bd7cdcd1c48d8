package api

import (
	"strings"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
)

// Reference words accepted in place of a room for the synthetic task lists
const (
	AllTasksRef      = "all"
	ReminderTasksRef = "reminders"
)

// Business domain types
type RoomListing struct {
	User     domain.RoomUser    `json:"user"`
	Section  domain.RoomSection `json:"section"`
	TopRooms []domain.Room      `json:"top_rooms"`
	NoRooms  bool               `json:"no_rooms"`
	// ShowUpsell is set when the personal section is hidden behind the pro tier
	ShowUpsell bool `json:"show_upsell"`
}

type RoomSheet struct {
	Room    domain.Room `json:"room"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

type DeletePreview struct {
	Room             domain.Room       `json:"room"`
	Tasks            []domain.RoomTask `json:"tasks"`
	ButtonText       string            `json:"button_text"`
	CanDelete        bool              `json:"can_delete"`
	NoPermissionText string            `json:"no_permission_text"`
}

type TaskEntry struct {
	Task     domain.RoomTask `json:"task"`
	RoomID   string          `json:"room_id"`
	RoomName string          `json:"room_name"`
}

type TaskListing struct {
	Title string      `json:"title"`
	Kind  string      `json:"kind"`
	Tasks []TaskEntry `json:"tasks"`
}

// ConfirmFunc asks the user to confirm a delete. Returning false cancels it.
type ConfirmFunc func(preview DeletePreview) (bool, error)

// findRoom resolves ref against sections by id first, then by
// case-insensitive name. A name shared by several rooms must be given as an id.
func findRoom(sections []domain.RoomSection, ref string) (domain.Room, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Room{}, errors.NewInvalidInputError("room", ref, "room reference cannot be empty")
	}

	var matches []domain.Room
	for _, section := range sections {
		for _, room := range section.Rooms {
			if room.ID == ref {
				return room, nil
			}
			if strings.EqualFold(room.Name, ref) {
				matches = append(matches, room)
			}
		}
	}

	switch len(matches) {
	case 0:
		return domain.Room{}, errors.NewMissingRoomError(ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Room{}, errors.NewInvalidInputError("room", ref, "name matches more than one room, use the room id")
	}
}

// taskEntries attaches the owning room to each task
func taskEntries(sections []domain.RoomSection, tasks []domain.RoomTask) []TaskEntry {
	owners := make(map[string]domain.Room)
	for _, section := range sections {
		for _, room := range section.Rooms {
			for _, task := range room.Tasks {
				owners[task.ID] = room
			}
		}
	}

	entries := make([]TaskEntry, 0, len(tasks))
	for _, task := range tasks {
		owner := owners[task.ID]
		entries = append(entries, TaskEntry{Task: task, RoomID: owner.ID, RoomName: owner.Name})
	}
	return entries
}

func roomIDs(rooms []domain.Room) map[string]bool {
	ids := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		ids[room.ID] = true
	}
	return ids
}
