package presentation

import (
	"sync"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
)

// Display names of the synthetic rows above the room list.
const (
	AllTasksRowName      = "All Tasks"
	TaskRemindersRowName = "Task Reminders"
)

// ListViewModel projects the data source into the room list and forwards
// navigation intents to a NavHandler.
type ListViewModel struct {
	navHandler  NavHandler
	unsubscribe func()

	mu            sync.RWMutex
	user          domain.RoomUser
	sections      []domain.RoomSection
	allTasks      []domain.RoomTask
	reminderTasks []domain.RoomTask
	selected      domain.SectionType
}

// NewListViewModel creates the list view model and subscribes it to source.
// Call Close to stop observing.
func NewListViewModel(source RoomSource, navHandler NavHandler) *ListViewModel {
	vm := &ListViewModel{
		navHandler: navHandler,
		selected:   domain.SectionHouse,
	}
	vm.apply(source.Snapshot())
	vm.unsubscribe = source.Subscribe(vm.apply)
	return vm
}

// Close stops observing the data source
func (vm *ListViewModel) Close() {
	vm.unsubscribe()
}

func (vm *ListViewModel) apply(snap datasource.Snapshot) {
	all := []domain.RoomTask{}
	for _, section := range snap.Sections {
		all = append(all, section.Tasks()...)
	}
	reminders := []domain.RoomTask{}
	for _, task := range all {
		if task.HasReminder {
			reminders = append(reminders, task)
		}
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.user = snap.User
	vm.sections = snap.Sections
	vm.allTasks = all
	vm.reminderTasks = reminders
}

// User returns the last observed user
func (vm *ListViewModel) User() domain.RoomUser {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.user
}

// Sections returns the last observed sections
func (vm *ListViewModel) Sections() []domain.RoomSection {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	sections := make([]domain.RoomSection, len(vm.sections))
	copy(sections, vm.sections)
	return sections
}

// AllTasks returns every task in section, room, task order
func (vm *ListViewModel) AllTasks() []domain.RoomTask {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]domain.RoomTask{}, vm.allTasks...)
}

// ReminderTasks returns the tasks with a reminder, in AllTasks order
func (vm *ListViewModel) ReminderTasks() []domain.RoomTask {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]domain.RoomTask{}, vm.reminderTasks...)
}

// SectionTasks returns the tasks of every section of the given type
func (vm *ListViewModel) SectionTasks(sectionType domain.SectionType) []domain.RoomTask {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	tasks := []domain.RoomTask{}
	for _, section := range vm.sections {
		if section.Type == sectionType {
			tasks = append(tasks, section.Tasks()...)
		}
	}
	return tasks
}

// IsPro reports whether the user is on the pro tier
func (vm *ListViewModel) IsPro() bool {
	return vm.User().IsPro()
}

// NoRooms reports whether every section is empty
func (vm *ListViewModel) NoRooms() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, section := range vm.sections {
		if len(section.Rooms) > 0 {
			return false
		}
	}
	return true
}

// TopSectionRooms returns the "All Tasks" and "Task Reminders" rows.
func (vm *ListViewModel) TopSectionRooms() []domain.Room {
	return []domain.Room{
		{ID: domain.AllRoomID, Name: AllTasksRowName, Tasks: vm.AllTasks()},
		{ID: domain.ReminderRoomID, Name: TaskRemindersRowName, Tasks: vm.ReminderTasks()},
	}
}

// SelectedSection returns the section type picked in the selector
func (vm *ListViewModel) SelectedSection() domain.SectionType {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.selected
}

// SelectSection changes the displayed section
func (vm *ListViewModel) SelectSection(sectionType domain.SectionType) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.selected = sectionType
}

// SectionToDisplay returns the selected section, or an empty one of that type
func (vm *ListViewModel) SectionToDisplay() domain.RoomSection {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, section := range vm.sections {
		if section.Type == vm.selected {
			return section.Clone()
		}
	}
	return domain.NewRoomSection(vm.selected, nil)
}

// ShowNonProPersonalList reports whether the personal upsell replaces the list
func (vm *ListViewModel) ShowNonProPersonalList() bool {
	return vm.SelectedSection() == domain.SectionPersonal && !vm.IsPro()
}

// ShowEditRoom forwards to the nav handler
func (vm *ListViewModel) ShowEditRoom(room domain.Room) {
	vm.navHandler.ShowEditRoom(room)
}

// ShowDeleteRoom forwards to the nav handler
func (vm *ListViewModel) ShowDeleteRoom(room domain.Room) {
	vm.navHandler.ShowDeleteRoom(room)
}

// ShowTasks forwards to the nav handler
func (vm *ListViewModel) ShowTasks(room domain.Room) {
	vm.navHandler.ShowTasks(room)
}

// ShowAddRoom forwards to the nav handler
func (vm *ListViewModel) ShowAddRoom(isPersonal bool) {
	vm.navHandler.ShowAddRoom(isPersonal)
}

// ShowReorderRooms forwards to the nav handler
func (vm *ListViewModel) ShowReorderRooms(section domain.RoomSection) {
	vm.navHandler.ShowReorderRooms(section)
}
