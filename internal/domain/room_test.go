package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoom(t *testing.T) {
	room := NewRoom("Kitchen", false)

	assert.True(t, room.IsNew())
	assert.Equal(t, "Kitchen", room.Name)
	assert.NotNil(t, room.Tasks)
	assert.Empty(t, room.Tasks)
	assert.Equal(t, SectionHouse, room.SectionType())
	assert.Equal(t, "Kitchen", room.String())
}

func TestRoom_IsSentinel(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{AllRoomID, true},
		{ReminderRoomID, true},
		{"all", false},
		{"r1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, Room{ID: tt.id}.IsSentinel())
		})
	}
}

func TestRoom_DirtyTaskCount(t *testing.T) {
	room := Room{ID: "k", Name: "Kitchen", Tasks: []RoomTask{
		NewRoomTask("t1", "Dishes", false, false),
		NewRoomTask("t2", "Counters", true, false),
		NewRoomTask("t3", "Floor", false, true),
	}}

	assert.Equal(t, 2, room.DirtyTaskCount())
	assert.Equal(t, 0, NewRoom("Empty", true).DirtyTaskCount())
}

func TestRoom_SectionType(t *testing.T) {
	assert.Equal(t, SectionPersonal, NewRoom("Office", true).SectionType())
	assert.Equal(t, SectionHouse, NewRoom("Garage", false).SectionType())
}

func TestRoomTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     RoomTask
		expected bool
	}{
		{"Valid task", NewRoomTask("t1", "Dust", false, false), true},
		{"Missing id", NewRoomTask("", "Dust", false, false), false},
		{"Missing name", NewRoomTask("t1", "", false, false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}
