// Package datasource holds the current room user and room sections and
// notifies subscribers whenever either is replaced.
package datasource

import (
	"sync"

	"chore-rooms/internal/domain"
)

// Snapshot is the state delivered to subscribers after every mutation.
type Snapshot struct {
	User     domain.RoomUser
	Sections []domain.RoomSection
}

// Listener receives a snapshot after each mutation.
type Listener func(Snapshot)

type subscription struct {
	id int
	fn Listener
}

type delivery struct {
	listeners []Listener
	snap      Snapshot
}

// RoomDataSource is the single source of truth for the room feature.
// Mutations replace whole values and are delivered synchronously to every
// subscriber, in subscription order, before the mutating call returns.
//
// A mutation made while a delivery is in progress, from a listener or another
// goroutine, is queued behind it. Every subscriber sees the snapshots in the
// order the mutations happened and the last one it sees is the current state.
// Such a mutation returns once queued and the running delivery sends it.
type RoomDataSource struct {
	mu         sync.Mutex
	user       domain.RoomUser
	sections   []domain.RoomSection
	subs       []subscription
	nextID     int
	pending    []delivery
	delivering bool
}

// New creates a data source. With no sections given it starts with an empty
// house and an empty personal section.
func New(user domain.RoomUser, sections ...domain.RoomSection) *RoomDataSource {
	if len(sections) == 0 {
		sections = []domain.RoomSection{domain.EmptyHouseSection(), domain.EmptyPersonalSection()}
	}
	return &RoomDataSource{
		user:     user,
		sections: cloneSections(sections),
	}
}

// User returns the current user
func (d *RoomDataSource) User() domain.RoomUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.user
}

// Sections returns a copy of the current sections in display order
func (d *RoomDataSource) Sections() []domain.RoomSection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneSections(d.sections)
}

// Snapshot returns the current state
func (d *RoomDataSource) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// SetUser replaces the current user and notifies subscribers
func (d *RoomDataSource) SetUser(user domain.RoomUser) {
	d.mu.Lock()
	d.user = user
	d.enqueueLocked()
	d.mu.Unlock()

	d.deliver()
}

// SetSections replaces every section and notifies subscribers
func (d *RoomDataSource) SetSections(sections []domain.RoomSection) {
	d.mu.Lock()
	d.sections = cloneSections(sections)
	d.enqueueLocked()
	d.mu.Unlock()

	d.deliver()
}

// Replace sets user and sections together with a single notification
func (d *RoomDataSource) Replace(user domain.RoomUser, sections []domain.RoomSection) {
	d.mu.Lock()
	d.user = user
	d.sections = cloneSections(sections)
	d.enqueueLocked()
	d.mu.Unlock()

	d.deliver()
}

// Subscribe registers fn and returns a function that removes it.
// fn is not called with the current state; use Snapshot for that.
// Calling the returned function more than once is a no-op.
func (d *RoomDataSource) Subscribe(fn Listener) func() {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.unsubscribe(id) })
	}
}

// SubscriberCount returns the number of active subscriptions
func (d *RoomDataSource) SubscriberCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Section returns the first section of the given type, or an empty one
func (d *RoomDataSource) Section(sectionType domain.SectionType) domain.RoomSection {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, section := range d.sections {
		if section.Type == sectionType {
			return section.Clone()
		}
	}
	return domain.NewRoomSection(sectionType, nil)
}

// HouseSection returns the house section
func (d *RoomDataSource) HouseSection() domain.RoomSection {
	return d.Section(domain.SectionHouse)
}

// PersonalSection returns the personal section
func (d *RoomDataSource) PersonalSection() domain.RoomSection {
	return d.Section(domain.SectionPersonal)
}

// Room finds a room by id across all sections
func (d *RoomDataSource) Room(id string) (domain.Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, section := range d.sections {
		for _, room := range section.Rooms {
			if room.ID == id {
				return room, true
			}
		}
	}
	return domain.Room{}, false
}

func (d *RoomDataSource) unsubscribe(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, sub := range d.subs {
		if sub.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return
		}
	}
}

func (d *RoomDataSource) snapshotLocked() Snapshot {
	return Snapshot{User: d.user, Sections: cloneSections(d.sections)}
}

func (d *RoomDataSource) listenersLocked() []Listener {
	listeners := make([]Listener, len(d.subs))
	for i, sub := range d.subs {
		listeners[i] = sub.fn
	}
	return listeners
}

// enqueueLocked queues the current state for the subscribers registered now
func (d *RoomDataSource) enqueueLocked() {
	d.pending = append(d.pending, delivery{listeners: d.listenersLocked(), snap: d.snapshotLocked()})
}

// deliver sends queued snapshots until none are left. Only one caller
// delivers at a time; others return and leave their snapshot to it.
func (d *RoomDataSource) deliver() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.delivering {
		return
	}
	d.delivering = true
	defer func() { d.delivering = false }()

	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		d.send(next)
	}
}

// send calls the listeners of one delivery without holding the lock
func (d *RoomDataSource) send(next delivery) {
	d.mu.Unlock()
	defer d.mu.Lock()
	for _, fn := range next.listeners {
		fn(next.snap)
	}
}

func cloneSections(sections []domain.RoomSection) []domain.RoomSection {
	cloned := make([]domain.RoomSection, len(sections))
	for i, section := range sections {
		cloned[i] = section.Clone()
	}
	return cloned
}
