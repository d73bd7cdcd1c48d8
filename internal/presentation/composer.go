package presentation

import "chore-rooms/internal/domain"

// Composer builds the room feature's view models around one data source
// and one router.
type Composer struct {
	source RoomSource
	router *MainViewModel
}

// NewComposer creates a composer.
func NewComposer(router *MainViewModel, source RoomSource) *Composer {
	return &Composer{source: source, router: router}
}

// Router returns the main view model
func (c *Composer) Router() *MainViewModel {
	return c.router
}

// MakeListViewModel builds the room list for the data source
func (c *Composer) MakeListViewModel() *ListViewModel {
	return NewListViewModel(c.source, c.router)
}

// MakeDetailViewModel builds the name sheet for room. A room without an id
// is created on save.
func (c *Composer) MakeDetailViewModel(room domain.Room) *DetailViewModel {
	return NewDetailViewModel(room, c.router, c.source)
}

// MakeDeleteViewModel builds the delete confirmation for room
func (c *Composer) MakeDeleteViewModel(room domain.Room) *DeleteViewModel {
	return NewDeleteViewModel(room, c.source, c.router.DeleteRoom)
}

// MakeReorderViewModel builds the reorder sheet for the rooms of section
func (c *Composer) MakeReorderViewModel(section domain.RoomSection) *ReorderViewModel {
	return NewReorderViewModel(section, c.router.SaveNewOrder)
}

// RouteViewModel returns the sheet view model for the current route:
// *DetailViewModel, *DeleteViewModel or *ReorderViewModel. It returns nil
// when no route is presented.
func (c *Composer) RouteViewModel() any {
	switch route := c.router.Route().(type) {
	case domain.DetailRoute:
		return c.MakeDetailViewModel(route.Target.TargetRoom())
	case domain.DeleteRoute:
		return c.MakeDeleteViewModel(route.Room)
	case domain.ReorderRoute:
		return c.MakeReorderViewModel(route.Section)
	default:
		return nil
	}
}
