package domain

import "strings"

// SectionType identifies a group of rooms.
type SectionType string

const (
	SectionHouse    SectionType = "house"
	SectionPersonal SectionType = "personal"
)

// SectionTypes lists every section type in display order.
func SectionTypes() []SectionType {
	return []SectionType{SectionHouse, SectionPersonal}
}

// ParseSectionType converts a string into a SectionType.
func ParseSectionType(s string) (SectionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SectionHouse):
		return SectionHouse, true
	case string(SectionPersonal):
		return SectionPersonal, true
	default:
		return "", false
	}
}

// ID returns the identifier of the section type.
func (st SectionType) ID() string {
	return string(st)
}

// Title returns the display title, e.g. "House Rooms".
func (st SectionType) Title() string {
	raw := string(st)
	if raw == "" {
		return "Rooms"
	}
	return strings.ToUpper(raw[:1]) + raw[1:] + " Rooms"
}

// IsPersonal returns true for the personal section type.
func (st SectionType) IsPersonal() bool {
	return st == SectionPersonal
}

// RoomSection is an ordered list of rooms of one section type.
// Its identity is derived from the type.
type RoomSection struct {
	Type  SectionType
	Rooms []Room
}

// NewRoomSection creates a section of the given type.
func NewRoomSection(sectionType SectionType, rooms []Room) RoomSection {
	if rooms == nil {
		rooms = []Room{}
	}
	return RoomSection{Type: sectionType, Rooms: rooms}
}

// EmptyHouseSection returns a house section with no rooms.
func EmptyHouseSection() RoomSection {
	return NewRoomSection(SectionHouse, nil)
}

// EmptyPersonalSection returns a personal section with no rooms.
func EmptyPersonalSection() RoomSection {
	return NewRoomSection(SectionPersonal, nil)
}

// ID returns the section identifier.
func (s RoomSection) ID() string {
	return s.Type.ID()
}

// Name returns the section display name.
func (s RoomSection) Name() string {
	return s.Type.Title()
}

// IsPersonal returns true if this is the personal section.
func (s RoomSection) IsPersonal() bool {
	return s.Type.IsPersonal()
}

// Tasks flattens the tasks of every room in room order.
func (s RoomSection) Tasks() []RoomTask {
	tasks := []RoomTask{}
	for _, room := range s.Rooms {
		tasks = append(tasks, room.Tasks...)
	}
	return tasks
}

// Clone returns a copy whose room slice can be reordered without
// affecting the original.
func (s RoomSection) Clone() RoomSection {
	rooms := make([]Room, len(s.Rooms))
	copy(rooms, s.Rooms)
	return RoomSection{Type: s.Type, Rooms: rooms}
}
