package domain

// NavRoute is the sheet currently presented by the room feature.
// A nil NavRoute means nothing is presented.
//
// Implementations: DeleteRoute, DetailRoute, ReorderRoute.
type NavRoute interface {
	ID() string
	NavTitle() string
	isNavRoute()
}

// DeleteRoute presents the delete confirmation for a room.
type DeleteRoute struct {
	Room Room
}

func (DeleteRoute) ID() string       { return "delete" }
func (DeleteRoute) NavTitle() string { return "Delete Room" }
func (DeleteRoute) isNavRoute()      {}

// DetailRoute presents the create/edit form for a room.
type DetailRoute struct {
	Target RoomToModify
}

func (DetailRoute) ID() string { return "detail" }

func (r DetailRoute) NavTitle() string {
	if r.Target != nil && r.Target.IsNew() {
		return "New Room"
	}
	return "Edit Room"
}

func (DetailRoute) isNavRoute() {}

// ReorderRoute presents the reorder list for a section.
type ReorderRoute struct {
	Section RoomSection
}

func (ReorderRoute) ID() string       { return "reorder" }
func (ReorderRoute) NavTitle() string { return "Reorder Rooms" }
func (ReorderRoute) isNavRoute()      {}

// RoomToModify is the room handed to the detail form.
//
// Implementations: NewRoomTarget, ExistingRoomTarget.
type RoomToModify interface {
	TargetRoom() Room
	IsNew() bool
	NavTitle() string
	isRoomToModify()
}

// NewRoomTarget wraps a room that is about to be created.
type NewRoomTarget struct {
	Room Room
}

func (t NewRoomTarget) TargetRoom() Room { return t.Room }
func (NewRoomTarget) IsNew() bool        { return true }

func (t NewRoomTarget) NavTitle() string {
	if t.Room.IsPersonal {
		return "New Personal Room"
	}
	return "New House Room"
}

func (NewRoomTarget) isRoomToModify() {}

// ExistingRoomTarget wraps a persisted room that is being edited.
type ExistingRoomTarget struct {
	Room Room
}

func (t ExistingRoomTarget) TargetRoom() Room { return t.Room }
func (ExistingRoomTarget) IsNew() bool        { return false }
func (t ExistingRoomTarget) NavTitle() string { return t.Room.Name }
func (ExistingRoomTarget) isRoomToModify()    {}

// TaskListType selects the task list shown outside the room feature.
//
// Implementations: AllTasksList, SingleRoomTasks, ReminderTasksList.
type TaskListType interface {
	Kind() string
	isTaskListType()
}

// AllTasksList lists the tasks of every room.
type AllTasksList struct{}

func (AllTasksList) Kind() string    { return "all" }
func (AllTasksList) isTaskListType() {}

// SingleRoomTasks lists the tasks of one room.
type SingleRoomTasks struct {
	Room Room
}

func (SingleRoomTasks) Kind() string    { return "single" }
func (SingleRoomTasks) isTaskListType() {}

// ReminderTasksList lists only the tasks that have a reminder.
type ReminderTasksList struct{}

func (ReminderTasksList) Kind() string    { return "only_reminders" }
func (ReminderTasksList) isTaskListType() {}

// TaskListTypeForRoom maps a room row to the task list it opens.
func TaskListTypeForRoom(room Room) TaskListType {
	switch room.ID {
	case AllRoomID:
		return AllTasksList{}
	case ReminderRoomID:
		return ReminderTasksList{}
	default:
		return SingleRoomTasks{Room: room}
	}
}
