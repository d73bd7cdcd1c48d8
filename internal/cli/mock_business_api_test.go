package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"chore-rooms/internal/api"
	"chore-rooms/internal/config"
	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
	"chore-rooms/internal/export"
	"chore-rooms/internal/feed"
)

// mockBusinessAPI is an in-memory implementation of api.BusinessAPI for testing
type mockBusinessAPI struct {
	user     domain.RoomUser
	house    []domain.Room
	personal []domain.Room
	nextID   int

	// events is nil while the change feed is disabled
	events []feed.Event
	// err, when set, is returned by every operation
	err error

	confirmAsked bool
	exported     []export.Format
	closed       bool
}

func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		user: domain.NewRoomUser(domain.TierPro, true),
	}
}

func (m *mockBusinessAPI) newID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockBusinessAPI) section(sectionType domain.SectionType) *[]domain.Room {
	if sectionType.IsPersonal() {
		return &m.personal
	}
	return &m.house
}

// findRoom resolves by id, then by case-insensitive name
func (m *mockBusinessAPI) findRoom(ref string) (*domain.Room, error) {
	for _, rooms := range []*[]domain.Room{&m.house, &m.personal} {
		for i := range *rooms {
			room := &(*rooms)[i]
			if room.ID == ref || strings.EqualFold(room.Name, ref) {
				return room, nil
			}
		}
	}
	return nil, errors.NewMissingRoomError(ref)
}

func (m *mockBusinessAPI) findTask(taskID string) (*domain.Room, int, error) {
	for _, rooms := range []*[]domain.Room{&m.house, &m.personal} {
		for i := range *rooms {
			room := &(*rooms)[i]
			for j, task := range room.Tasks {
				if task.ID == taskID {
					return room, j, nil
				}
			}
		}
	}
	return nil, 0, errors.NewNotFoundError("task", taskID)
}

func (m *mockBusinessAPI) AddRoom(ctx context.Context, name string, isPersonal bool) (*api.RoomSheet, error) {
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewEmptyNameError("name")
	}
	if !isPersonal && !m.user.CanAddHouseRoom(len(m.house)) {
		limit, _ := m.user.RoomLimit()
		return nil, errors.NewRoomLimitError(limit)
	}

	room := domain.NewRoom(name, isPersonal)
	room.ID = m.newID("room")
	rooms := m.section(room.SectionType())
	*rooms = append(*rooms, room)

	return &api.RoomSheet{Room: room, Title: "Add Room", Message: "Rooms help you group your tasks."}, nil
}

func (m *mockBusinessAPI) RenameRoom(ctx context.Context, ref string, newName string) (*api.RoomSheet, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, err := m.findRoom(ref)
	if err != nil {
		return nil, err
	}
	if !m.user.HasEditPermission {
		return nil, errors.NewNonAdminEditError(room.ID)
	}
	room.Name = newName
	return &api.RoomSheet{Room: *room, Title: room.Name}, nil
}

func (m *mockBusinessAPI) DeleteRoom(ctx context.Context, ref string, confirm api.ConfirmFunc) (*api.DeletePreview, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, err := m.findRoom(ref)
	if err != nil {
		return nil, err
	}
	preview := api.DeletePreview{
		Room:       *room,
		Tasks:      room.Tasks,
		ButtonText: "Delete Room",
		CanDelete:  m.user.HasEditPermission,
	}
	if !preview.CanDelete {
		return nil, errors.NewNonAdminDeleteError(room.ID)
	}

	if confirm != nil {
		m.confirmAsked = true
		ok, err := confirm(preview)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewCancelDeleteError(room.ID)
		}
	}

	rooms := m.section(room.SectionType())
	kept := []domain.Room{}
	for _, r := range *rooms {
		if r.ID != preview.Room.ID {
			kept = append(kept, r)
		}
	}
	*rooms = kept
	return &preview, nil
}

func (m *mockBusinessAPI) ReorderRooms(ctx context.Context, sectionType domain.SectionType, refs []string) ([]domain.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	rooms := m.section(sectionType)
	listed := map[string]bool{}
	ordered := []domain.Room{}
	for _, ref := range refs {
		found := false
		for _, room := range *rooms {
			if room.ID == ref || strings.EqualFold(room.Name, ref) {
				if listed[room.ID] {
					return nil, errors.NewInvalidInputError("rooms", refs, "each room can only be listed once")
				}
				listed[room.ID] = true
				ordered = append(ordered, room)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NewMissingRoomError(ref)
		}
	}
	for _, room := range *rooms {
		if !listed[room.ID] {
			ordered = append(ordered, room)
		}
	}
	*rooms = ordered
	return ordered, nil
}

func (m *mockBusinessAPI) MoveRoom(ctx context.Context, sectionType domain.SectionType, from, to int) ([]domain.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	rooms := m.section(sectionType)
	if from < 0 || from >= len(*rooms) || to < 0 || to >= len(*rooms) {
		return nil, errors.NewInvalidInputError("position", from, "position out of range")
	}
	moved := (*rooms)[from]
	rest := append(append([]domain.Room{}, (*rooms)[:from]...), (*rooms)[from+1:]...)
	ordered := append(append(append([]domain.Room{}, rest[:to]...), moved), rest[to:]...)
	*rooms = ordered
	return ordered, nil
}

func (m *mockBusinessAPI) AddTask(ctx context.Context, roomRef string, name string, hasReminder bool) (*api.TaskEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, err := m.findRoom(roomRef)
	if err != nil {
		return nil, err
	}
	task := domain.NewRoomTask(m.newID("task"), name, false, hasReminder)
	room.Tasks = append(room.Tasks, task)
	return &api.TaskEntry{Task: task, RoomID: room.ID, RoomName: room.Name}, nil
}

func (m *mockBusinessAPI) SetTaskClean(ctx context.Context, taskID string, clean bool) (*api.TaskEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, i, err := m.findTask(taskID)
	if err != nil {
		return nil, err
	}
	room.Tasks[i].IsClean = clean
	return &api.TaskEntry{Task: room.Tasks[i], RoomID: room.ID, RoomName: room.Name}, nil
}

func (m *mockBusinessAPI) SetTaskReminder(ctx context.Context, taskID string, hasReminder bool) (*api.TaskEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, i, err := m.findTask(taskID)
	if err != nil {
		return nil, err
	}
	room.Tasks[i].HasReminder = hasReminder
	return &api.TaskEntry{Task: room.Tasks[i], RoomID: room.ID, RoomName: room.Name}, nil
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, taskID string) error {
	if m.err != nil {
		return m.err
	}
	room, i, err := m.findTask(taskID)
	if err != nil {
		return err
	}
	room.Tasks = append(room.Tasks[:i], room.Tasks[i+1:]...)
	return nil
}

func (m *mockBusinessAPI) ListRooms(ctx context.Context, sectionType domain.SectionType) (*api.RoomListing, error) {
	if m.err != nil {
		return nil, m.err
	}
	all := m.allTasks(false)
	reminders := m.allTasks(true)
	return &api.RoomListing{
		User:    m.user,
		Section: domain.NewRoomSection(sectionType, *m.section(sectionType)),
		TopRooms: []domain.Room{
			{ID: domain.AllRoomID, Name: "All Tasks", Tasks: all},
			{ID: domain.ReminderRoomID, Name: "Task Reminders", Tasks: reminders},
		},
		NoRooms:    len(m.house) == 0 && len(m.personal) == 0,
		ShowUpsell: sectionType.IsPersonal() && !m.user.IsPro(),
	}, nil
}

func (m *mockBusinessAPI) allTasks(onlyReminders bool) []domain.RoomTask {
	tasks := []domain.RoomTask{}
	for _, room := range append(append([]domain.Room{}, m.house...), m.personal...) {
		for _, task := range room.Tasks {
			if !onlyReminders || task.HasReminder {
				tasks = append(tasks, task)
			}
		}
	}
	return tasks
}

func (m *mockBusinessAPI) GetRoom(ctx context.Context, ref string) (*domain.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, err := m.findRoom(ref)
	if err != nil {
		return nil, err
	}
	found := *room
	return &found, nil
}

func (m *mockBusinessAPI) Tasks(ctx context.Context, ref string) (*api.TaskListing, error) {
	if m.err != nil {
		return nil, m.err
	}

	entries := func(rooms []domain.Room, onlyReminders bool) []api.TaskEntry {
		result := []api.TaskEntry{}
		for _, room := range rooms {
			for _, task := range room.Tasks {
				if !onlyReminders || task.HasReminder {
					result = append(result, api.TaskEntry{Task: task, RoomID: room.ID, RoomName: room.Name})
				}
			}
		}
		return result
	}
	everyRoom := append(append([]domain.Room{}, m.house...), m.personal...)

	switch strings.ToLower(ref) {
	case api.AllTasksRef:
		return &api.TaskListing{Title: "All Tasks", Kind: "all", Tasks: entries(everyRoom, false)}, nil
	case api.ReminderTasksRef:
		return &api.TaskListing{Title: "Task Reminders", Kind: "only_reminders", Tasks: entries(everyRoom, true)}, nil
	}

	room, err := m.findRoom(ref)
	if err != nil {
		return nil, err
	}
	return &api.TaskListing{Title: room.Name, Kind: "single", Tasks: entries([]domain.Room{*room}, false)}, nil
}

func (m *mockBusinessAPI) Export(ctx context.Context, w io.Writer, format export.Format) error {
	if m.err != nil {
		return m.err
	}
	m.exported = append(m.exported, format)
	if format == export.FormatXLSX {
		_, err := w.Write([]byte("PK"))
		return err
	}
	if _, err := io.WriteString(w, "section,room,task\n"); err != nil {
		return err
	}
	for _, entry := range entriesOf(append(append([]domain.Room{}, m.house...), m.personal...)) {
		if _, err := fmt.Fprintf(w, "%s,%s,%s\n", entry.section, entry.room, entry.task); err != nil {
			return err
		}
	}
	return nil
}

type exportRow struct {
	section string
	room    string
	task    string
}

func entriesOf(rooms []domain.Room) []exportRow {
	rows := []exportRow{}
	for _, room := range rooms {
		for _, task := range room.Tasks {
			rows = append(rows, exportRow{section: room.SectionType().ID(), room: room.Name, task: task.Name})
		}
	}
	return rows
}

func (m *mockBusinessAPI) RecentEvents(ctx context.Context, count int64) ([]feed.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.events == nil {
		return nil, errors.NewInvalidInputError("feed", "disabled", "enable the change feed to read events")
	}
	if int64(len(m.events)) > count {
		return m.events[:count], nil
	}
	return m.events, nil
}

func (m *mockBusinessAPI) Close() {
	m.closed = true
}

// seedRoom adds a saved room with the given tasks
func (m *mockBusinessAPI) seedRoom(name string, isPersonal bool, tasks ...domain.RoomTask) domain.Room {
	room := domain.NewRoom(name, isPersonal)
	room.ID = m.newID("room")
	room.Tasks = append(room.Tasks, tasks...)
	rooms := m.section(room.SectionType())
	*rooms = append(*rooms, room)
	return room
}

func sampleEvents() []feed.Event {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return []feed.Event{
		{ID: "2-0", Type: feed.EventRoomCreated, RoomID: "room-1", RoomName: "Kitchen", At: at.Add(time.Minute)},
		{ID: "1-0", Type: feed.EventRoomsReordered, RoomIDs: []string{"room-1", "room-2"}, At: at},
	}
}

// testApp bundles an App with the mock behind it and its captured output
type testApp struct {
	*App
	mock *mockBusinessAPI
	out  *bytes.Buffer
}

// setupTestAppWithMockBusinessAPI creates an App around a fresh mock.
// input is what the user types at prompts.
func setupTestAppWithMockBusinessAPI(t *testing.T, input string) (*testApp, func()) {
	t.Helper()

	mock := newMockBusinessAPI()
	out := &bytes.Buffer{}
	app := NewAppWithIO(mock, config.NewConfig(), nil, strings.NewReader(input), out)

	cleanup := func() {
		mock.Close()
	}
	return &testApp{App: app, mock: mock, out: out}, cleanup
}
