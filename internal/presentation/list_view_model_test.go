package presentation

import (
	"testing"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []domain.RoomTask) []string {
	ids := []string{}
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func sampleSections() []domain.RoomSection {
	return []domain.RoomSection{
		domain.NewRoomSection(domain.SectionHouse, []domain.Room{
			{ID: "k", Name: "Kitchen", Tasks: []domain.RoomTask{makeTask("1", false), makeTask("2", true)}},
			{ID: "b", Name: "Bathroom", Tasks: []domain.RoomTask{makeTask("3", true)}},
		}),
		domain.NewRoomSection(domain.SectionPersonal, []domain.Room{
			{ID: "o", Name: "Office", IsPersonal: true, Tasks: []domain.RoomTask{makeTask("4", false), makeTask("5", true)}},
		}),
	}
}

func TestListViewModel_InitialState(t *testing.T) {
	ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
	vm := NewListViewModel(ds, &mockNavHandler{})
	defer vm.Close()

	assert.True(t, vm.NoRooms())
	assert.Empty(t, vm.AllTasks())
	assert.Empty(t, vm.ReminderTasks())
	assert.False(t, vm.IsPro())
	assert.Equal(t, domain.SectionHouse, vm.SelectedSection())
	assert.False(t, vm.ShowNonProPersonalList())
}

func TestListViewModel_Aggregation(t *testing.T) {
	ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
	vm := NewListViewModel(ds, &mockNavHandler{})
	defer vm.Close()

	ds.SetSections(sampleSections())

	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, taskIDs(vm.AllTasks())); diff != "" {
		t.Errorf("AllTasks() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2", "3", "5"}, taskIDs(vm.ReminderTasks())); diff != "" {
		t.Errorf("ReminderTasks() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"1", "2", "3"}, taskIDs(vm.SectionTasks(domain.SectionHouse)))
	assert.Equal(t, []string{"4", "5"}, taskIDs(vm.SectionTasks(domain.SectionPersonal)))
	assert.False(t, vm.NoRooms())
}

func TestListViewModel_AggregationFollowsSectionOrder(t *testing.T) {
	sections := sampleSections()
	reversed := []domain.RoomSection{sections[1], sections[0]}
	ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true), reversed...)
	vm := NewListViewModel(ds, &mockNavHandler{})
	defer vm.Close()

	assert.Equal(t, []string{"4", "5", "1", "2", "3"}, taskIDs(vm.AllTasks()))
	assert.Equal(t, []string{"5", "2", "3"}, taskIDs(vm.ReminderTasks()))
}

func TestListViewModel_NoRooms(t *testing.T) {
	tests := []struct {
		name     string
		sections []domain.RoomSection
		expected bool
	}{
		{"both empty", []domain.RoomSection{domain.EmptyHouseSection(), domain.EmptyPersonalSection()}, true},
		{"no sections", nil, true},
		{"house has a room", []domain.RoomSection{
			domain.NewRoomSection(domain.SectionHouse, makeRooms("h", 1, false)),
			domain.EmptyPersonalSection(),
		}, false},
		{"personal has a room", []domain.RoomSection{
			domain.EmptyHouseSection(),
			domain.NewRoomSection(domain.SectionPersonal, makeRooms("p", 1, true)),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
			vm := NewListViewModel(ds, &mockNavHandler{})
			defer vm.Close()

			ds.SetSections(tt.sections)
			assert.Equal(t, tt.expected, vm.NoRooms())
		})
	}
}

func TestListViewModel_IsPro(t *testing.T) {
	tests := []struct {
		tier     domain.UserTier
		expected bool
	}{
		{domain.TierGuest, false},
		{domain.TierNormal, false},
		{domain.TierPro, true},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			ds := datasource.New(domain.NewRoomUser(domain.TierGuest, false))
			vm := NewListViewModel(ds, &mockNavHandler{})
			defer vm.Close()

			ds.SetUser(domain.NewRoomUser(tt.tier, false))
			assert.Equal(t, tt.expected, vm.IsPro())
		})
	}
}

func TestListViewModel_TopSectionRooms(t *testing.T) {
	ds := datasource.New(domain.NewRoomUser(domain.TierPro, true), sampleSections()...)
	vm := NewListViewModel(ds, &mockNavHandler{})
	defer vm.Close()

	rows := vm.TopSectionRooms()
	require.Len(t, rows, 2)
	assert.Equal(t, domain.AllRoomID, rows[0].ID)
	assert.Equal(t, "All Tasks", rows[0].Name)
	assert.Len(t, rows[0].Tasks, 5)
	assert.Equal(t, domain.ReminderRoomID, rows[1].ID)
	assert.Equal(t, "Task Reminders", rows[1].Name)
	assert.Equal(t, []string{"2", "3", "5"}, taskIDs(rows[1].Tasks))
}

func TestListViewModel_SectionSelection(t *testing.T) {
	tests := []struct {
		name         string
		tier         domain.UserTier
		selected     domain.SectionType
		wantRoomID   string
		wantNonProUI bool
	}{
		{"house for normal user", domain.TierNormal, domain.SectionHouse, "k", false},
		{"personal for normal user", domain.TierNormal, domain.SectionPersonal, "o", true},
		{"personal for guest", domain.TierGuest, domain.SectionPersonal, "o", true},
		{"personal for pro user", domain.TierPro, domain.SectionPersonal, "o", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasource.New(domain.NewRoomUser(tt.tier, true), sampleSections()...)
			vm := NewListViewModel(ds, &mockNavHandler{})
			defer vm.Close()

			vm.SelectSection(tt.selected)
			section := vm.SectionToDisplay()
			assert.Equal(t, tt.selected, section.Type)
			assert.Equal(t, tt.wantRoomID, section.Rooms[0].ID)
			assert.Equal(t, tt.wantNonProUI, vm.ShowNonProPersonalList())
		})
	}
}

func TestListViewModel_ForwardsIntents(t *testing.T) {
	nav := &mockNavHandler{}
	ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true), sampleSections()...)
	vm := NewListViewModel(ds, nav)
	defer vm.Close()

	room := domain.Room{ID: "k", Name: "Kitchen"}
	vm.ShowEditRoom(room)
	vm.ShowDeleteRoom(room)
	vm.ShowTasks(room)
	vm.ShowAddRoom(true)
	vm.ShowAddRoom(false)
	vm.ShowReorderRooms(domain.EmptyPersonalSection())

	assert.Equal(t, []string{"edit", "delete", "tasks", "add personal", "add house", "reorder personal"}, nav.calls)
	assert.Equal(t, []domain.Room{room, room, room}, nav.rooms)
}

func TestListViewModel_Close(t *testing.T) {
	ds := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
	vm := NewListViewModel(ds, &mockNavHandler{})
	require.Equal(t, 1, ds.SubscriberCount())

	vm.Close()
	ds.SetSections(sampleSections())

	assert.Equal(t, 0, ds.SubscriberCount())
	assert.True(t, vm.NoRooms())
}
