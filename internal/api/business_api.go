package api

import (
	"context"
	"io"
	"strings"
	"sync"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
	"chore-rooms/internal/export"
	"chore-rooms/internal/feed"
	"chore-rooms/internal/presentation"
	"chore-rooms/internal/services"
)

// BusinessAPI drives the room feature the way a screen would: every workflow
// goes through the list view model, the router and the sheet it presents.
type BusinessAPI interface {
	// ========== Room Workflows ==========

	// AddRoom opens the add sheet for a section, names the room and saves it
	AddRoom(ctx context.Context, name string, isPersonal bool) (*RoomSheet, error)

	// RenameRoom opens the edit sheet for a room and saves the new name
	RenameRoom(ctx context.Context, ref string, newName string) (*RoomSheet, error)

	// DeleteRoom opens the delete sheet and deletes the room once confirm agrees.
	// A nil confirm deletes without asking.
	DeleteRoom(ctx context.Context, ref string, confirm ConfirmFunc) (*DeletePreview, error)

	// ReorderRooms puts the listed rooms first, keeping the rest in their current order
	ReorderRooms(ctx context.Context, sectionType domain.SectionType, refs []string) ([]domain.Room, error)

	// MoveRoom moves the room at index from to index to within a section
	MoveRoom(ctx context.Context, sectionType domain.SectionType, from, to int) ([]domain.Room, error)

	// ========== Task Workflows ==========

	// AddTask adds a dirty task to a room
	AddTask(ctx context.Context, roomRef string, name string, hasReminder bool) (*TaskEntry, error)

	// SetTaskClean marks a task clean or dirty
	SetTaskClean(ctx context.Context, taskID string, clean bool) (*TaskEntry, error)

	// SetTaskReminder turns a task reminder on or off
	SetTaskReminder(ctx context.Context, taskID string, hasReminder bool) (*TaskEntry, error)

	// DeleteTask removes a task from its room
	DeleteTask(ctx context.Context, taskID string) error

	// ========== Query Operations ==========

	// ListRooms returns the room list with the given section selected
	ListRooms(ctx context.Context, sectionType domain.SectionType) (*RoomListing, error)

	// GetRoom resolves a room by id or name
	GetRoom(ctx context.Context, ref string) (*domain.Room, error)

	// Tasks opens the task list for a room, or for "all" / "reminders"
	Tasks(ctx context.Context, ref string) (*TaskListing, error)

	// ========== Export and Feed ==========

	// Export writes every room and task in the given format
	Export(ctx context.Context, w io.Writer, format export.Format) error

	// RecentEvents returns the newest household change events
	RecentEvents(ctx context.Context, count int64) ([]feed.Event, error)

	// Close stops the list view model observing the data source
	Close()
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	service  services.RoomService
	source   *datasource.RoomDataSource
	router   *presentation.MainViewModel
	composer *presentation.Composer
	list     *presentation.ListViewModel
	events   feed.Reader

	mu       sync.Mutex
	taskList domain.TaskListType
}

// NewBusinessAPI creates a new BusinessAPI instance. A nil events reader
// disables RecentEvents.
func NewBusinessAPI(service services.RoomService, source *datasource.RoomDataSource, events feed.Reader) BusinessAPI {
	b := &businessAPIImpl{
		service: service,
		source:  source,
		events:  events,
	}
	b.router = presentation.NewMainViewModel(service, presentation.TaskListPresenterFunc(b.showTaskList))
	b.composer = presentation.NewComposer(b.router, source)
	b.list = b.composer.MakeListViewModel()
	return b
}

func (b *businessAPIImpl) Close() {
	b.list.Close()
}

func (b *businessAPIImpl) showTaskList(listType domain.TaskListType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.taskList = listType
}

func (b *businessAPIImpl) presentedTaskList() domain.TaskListType {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.taskList
}

// sheet returns the view model of the presented route as T
func sheet[T any](b *businessAPIImpl) (T, error) {
	vm, ok := b.composer.RouteViewModel().(T)
	if !ok {
		route := b.router.Route()
		b.router.DismissRoute()
		var zero T
		return zero, errors.NewInvalidInputError("route", route, "expected sheet is not presented")
	}
	return vm, nil
}

// ========== Room Workflows ==========

func (b *businessAPIImpl) AddRoom(ctx context.Context, name string, isPersonal bool) (*RoomSheet, error) {
	// 1. Refresh the list from storage
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	sectionType := domain.SectionHouse
	if isPersonal {
		sectionType = domain.SectionPersonal
	}
	before := roomIDs(b.source.Section(sectionType).Rooms)

	// 2. Present the add sheet and fill it in
	b.list.ShowAddRoom(isPersonal)
	detail, err := sheet[*presentation.DetailViewModel](b)
	if err != nil {
		return nil, err
	}
	detail.SetName(name)
	result := &RoomSheet{Title: detail.Title(), Message: detail.Message()}

	// 3. Save; the router dismisses the sheet on success only
	if err := detail.SaveRoom(ctx); err != nil {
		b.router.DismissRoute()
		return nil, err
	}

	// 4. The saved room is the one that was not in the section before
	for _, room := range b.source.Section(sectionType).Rooms {
		if !before[room.ID] {
			result.Room = room
			break
		}
	}
	return result, nil
}

func (b *businessAPIImpl) RenameRoom(ctx context.Context, ref string, newName string) (*RoomSheet, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	room, err := findRoom(b.source.Sections(), ref)
	if err != nil {
		return nil, err
	}

	b.list.ShowEditRoom(room)
	detail, err := sheet[*presentation.DetailViewModel](b)
	if err != nil {
		return nil, err
	}
	detail.SetName(newName)
	result := &RoomSheet{Title: detail.Title(), Message: detail.Message()}

	if err := detail.SaveRoom(ctx); err != nil {
		b.router.DismissRoute()
		return nil, err
	}

	if saved, ok := b.source.Room(room.ID); ok {
		result.Room = saved
	}
	return result, nil
}

func (b *businessAPIImpl) DeleteRoom(ctx context.Context, ref string, confirm ConfirmFunc) (*DeletePreview, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	room, err := findRoom(b.source.Sections(), ref)
	if err != nil {
		return nil, err
	}

	b.list.ShowDeleteRoom(room)
	vm, err := sheet[*presentation.DeleteViewModel](b)
	if err != nil {
		return nil, err
	}
	preview := &DeletePreview{
		Room:             vm.Room(),
		Tasks:            vm.TaskList(),
		ButtonText:       vm.DeleteButtonText(),
		CanDelete:        vm.CanDelete(),
		NoPermissionText: vm.NoPermissionText(),
	}

	if !preview.CanDelete {
		b.router.DismissRoute()
		return preview, errors.NewNonAdminDeleteError(room.ID)
	}

	if confirm != nil {
		ok, err := confirm(*preview)
		if err != nil {
			b.router.DismissRoute()
			return preview, err
		}
		if !ok {
			b.router.DismissRoute()
			return preview, errors.NewCancelDeleteError(room.ID)
		}
	}

	if err := vm.DeleteRoom(ctx); err != nil {
		b.router.DismissRoute()
		return preview, err
	}
	return preview, nil
}

func (b *businessAPIImpl) ReorderRooms(ctx context.Context, sectionType domain.SectionType, refs []string) ([]domain.Room, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	section := b.source.Section(sectionType)

	// Resolve within the section only; listed rooms go first
	ids := make([]string, 0, len(section.Rooms))
	listed := make(map[string]bool, len(refs))
	for _, ref := range refs {
		room, err := findRoom([]domain.RoomSection{section}, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, room.ID)
		listed[room.ID] = true
	}
	for _, room := range section.Rooms {
		if !listed[room.ID] {
			ids = append(ids, room.ID)
		}
	}

	return b.reorder(ctx, section, func(vm *presentation.ReorderViewModel) error {
		return vm.SetOrder(ids)
	})
}

func (b *businessAPIImpl) MoveRoom(ctx context.Context, sectionType domain.SectionType, from, to int) ([]domain.Room, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}

	return b.reorder(ctx, b.source.Section(sectionType), func(vm *presentation.ReorderViewModel) error {
		return vm.Move(from, to)
	})
}

func (b *businessAPIImpl) reorder(ctx context.Context, section domain.RoomSection, arrange func(vm *presentation.ReorderViewModel) error) ([]domain.Room, error) {
	b.list.ShowReorderRooms(section)
	vm, err := sheet[*presentation.ReorderViewModel](b)
	if err != nil {
		return nil, err
	}

	if err := arrange(vm); err != nil {
		b.router.DismissRoute()
		return nil, err
	}
	if err := vm.SaveChanges(ctx); err != nil {
		b.router.DismissRoute()
		return nil, err
	}
	return b.source.Section(section.Type).Rooms, nil
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, roomRef string, name string, hasReminder bool) (*TaskEntry, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	room, err := findRoom(b.source.Sections(), roomRef)
	if err != nil {
		return nil, err
	}

	task, err := b.service.AddTask(ctx, room.ID, name, hasReminder)
	if err != nil {
		return nil, err
	}
	return &TaskEntry{Task: task, RoomID: room.ID, RoomName: room.Name}, nil
}

func (b *businessAPIImpl) SetTaskClean(ctx context.Context, taskID string, clean bool) (*TaskEntry, error) {
	task, err := b.service.SetTaskClean(ctx, taskID, clean)
	if err != nil {
		return nil, err
	}
	entry := taskEntries(b.source.Sections(), []domain.RoomTask{task})[0]
	return &entry, nil
}

func (b *businessAPIImpl) SetTaskReminder(ctx context.Context, taskID string, hasReminder bool) (*TaskEntry, error) {
	task, err := b.service.SetTaskReminder(ctx, taskID, hasReminder)
	if err != nil {
		return nil, err
	}
	entry := taskEntries(b.source.Sections(), []domain.RoomTask{task})[0]
	return &entry, nil
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID string) error {
	return b.service.DeleteTask(ctx, taskID)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) ListRooms(ctx context.Context, sectionType domain.SectionType) (*RoomListing, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}

	b.list.SelectSection(sectionType)
	return &RoomListing{
		User:       b.list.User(),
		Section:    b.list.SectionToDisplay(),
		TopRooms:   b.list.TopSectionRooms(),
		NoRooms:    b.list.NoRooms(),
		ShowUpsell: b.list.ShowNonProPersonalList(),
	}, nil
}

func (b *businessAPIImpl) GetRoom(ctx context.Context, ref string) (*domain.Room, error) {
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}
	room, err := findRoom(b.source.Sections(), ref)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (b *businessAPIImpl) Tasks(ctx context.Context, ref string) (*TaskListing, error) {
	// 1. Refresh and pick the row to open
	if err := b.service.Load(ctx); err != nil {
		return nil, err
	}

	var room domain.Room
	switch top := b.list.TopSectionRooms(); {
	case equalRef(ref, AllTasksRef, domain.AllRoomID):
		room = top[0]
	case equalRef(ref, ReminderTasksRef, domain.ReminderRoomID):
		room = top[1]
	default:
		found, err := findRoom(b.list.Sections(), ref)
		if err != nil {
			return nil, err
		}
		room = found
	}

	// 2. The router hands the list type to the task list presenter
	b.list.ShowTasks(room)

	// 3. Build the list the presenter was asked to show
	sections := b.list.Sections()
	switch listType := b.presentedTaskList().(type) {
	case domain.AllTasksList:
		return &TaskListing{Title: presentation.AllTasksRowName, Kind: listType.Kind(), Tasks: taskEntries(sections, b.list.AllTasks())}, nil
	case domain.ReminderTasksList:
		return &TaskListing{Title: presentation.TaskRemindersRowName, Kind: listType.Kind(), Tasks: taskEntries(sections, b.list.ReminderTasks())}, nil
	case domain.SingleRoomTasks:
		return &TaskListing{Title: listType.Room.Name, Kind: listType.Kind(), Tasks: taskEntries(sections, listType.Room.Tasks)}, nil
	default:
		return nil, errors.NewInvalidInputError("room", ref, "no task list was presented")
	}
}

func equalRef(ref string, names ...string) bool {
	ref = strings.TrimSpace(ref)
	for _, name := range names {
		if strings.EqualFold(ref, name) {
			return true
		}
	}
	return false
}

// ========== Export and Feed ==========

func (b *businessAPIImpl) Export(ctx context.Context, w io.Writer, format export.Format) error {
	if err := b.service.Load(ctx); err != nil {
		return err
	}
	return export.Write(w, format, b.source.Sections())
}

func (b *businessAPIImpl) RecentEvents(ctx context.Context, count int64) ([]feed.Event, error) {
	if b.events == nil {
		return nil, errors.NewInvalidInputError("feed", "disabled", "enable the change feed to read events")
	}
	if count <= 0 {
		return nil, errors.NewInvalidInputError("count", count, "count must be positive")
	}
	return b.events.Recent(ctx, count)
}
