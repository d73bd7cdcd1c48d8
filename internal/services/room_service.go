package services

import (
	"context"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
	"chore-rooms/internal/feed"
	"chore-rooms/internal/logging"
	"chore-rooms/internal/repository/sqlite"
	"chore-rooms/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// roomServiceImpl implements the RoomService interface
type roomServiceImpl struct {
	repo      sqlite.Repository
	source    *datasource.RoomDataSource
	validator *validation.RoomValidator
	publisher feed.Publisher
	logger    *zap.Logger
	mapper    *domain.Mapper
	newID     func() string
}

// NewRoomService creates a new RoomService instance. A nil publisher or
// logger disables the change feed or logging.
func NewRoomService(repo sqlite.Repository, source *datasource.RoomDataSource, validator *validation.RoomValidator, publisher feed.Publisher, logger *zap.Logger) RoomService {
	if validator == nil {
		validator = validation.NewRoomValidator()
	}
	if publisher == nil {
		publisher = feed.NopPublisher{}
	}
	return &roomServiceImpl{
		repo:      repo,
		source:    source,
		validator: validator,
		publisher: publisher,
		logger:    logging.OrNop(logger),
		mapper:    domain.NewMapper(),
		newID:     uuid.NewString,
	}
}

// Load replaces the data source sections with the stored rooms
func (s *roomServiceImpl) Load(ctx context.Context) error {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return err
	}

	s.source.SetSections(s.mapper.Section.FromDatabase(rooms, tasks))
	return nil
}

// SaveNewRoom stores a new room and its tasks. An empty id is replaced with
// a fresh one.
func (s *roomServiceImpl) SaveNewRoom(ctx context.Context, room domain.Room) error {
	if room.ID == "" {
		room.ID = s.newID()
	}
	if room.IsSentinel() {
		return errors.NewInvalidInputError("room_id", room.ID, "reserved room id")
	}

	siblings, err := s.sectionRooms(ctx, room.IsPersonal)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateRoom(room, siblings); err != nil {
		return err
	}
	if !room.IsPersonal {
		if err := s.checkHouseRoomLimit(len(siblings)); err != nil {
			return err
		}
	}

	dbTasks, err := s.newRoomTasks(room)
	if err != nil {
		return err
	}

	name, _ := s.validator.GetValidRoomName(room.Name)
	dbRoom := s.mapper.Room.ToDatabase(room)
	dbRoom.Name = name
	if err := s.repo.CreateRoomWithTasks(ctx, &dbRoom, dbTasks); err != nil {
		return err
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("name", name),
		zap.Bool("is_personal", room.IsPersonal),
		zap.Int("tasks", len(dbTasks)))

	s.afterChange(ctx, feed.Event{
		Type:       feed.EventRoomCreated,
		RoomID:     room.ID,
		RoomName:   name,
		IsPersonal: room.IsPersonal,
	})
	return nil
}

// newRoomTasks validates the tasks a new room is created with and maps them
// to rows. Tasks without an id get a fresh one.
func (s *roomServiceImpl) newRoomTasks(room domain.Room) ([]*sqlite.Task, error) {
	seen := make(map[string]bool, len(room.Tasks))
	dbTasks := make([]*sqlite.Task, 0, len(room.Tasks))
	for _, task := range room.Tasks {
		if err := s.validator.ValidateTask(task); err != nil {
			return nil, err
		}
		task.Name, _ = s.validator.GetValidTaskName(task.Name)

		if task.ID == "" {
			task.ID = s.newID()
		}
		if seen[task.ID] {
			return nil, errors.NewInvalidInputError("task_id", task.ID, "task ids must be unique")
		}
		seen[task.ID] = true

		dbTask := s.mapper.Task.ToDatabase(room.ID, task)
		dbTasks = append(dbTasks, &dbTask)
	}
	return dbTasks, nil
}

// UpdateRoom renames a room or moves it to the other section.
// Moving a room between sections needs edit permission, and moving it into
// the house section counts against the tier limit.
func (s *roomServiceImpl) UpdateRoom(ctx context.Context, room domain.Room) error {
	existing, err := s.getRoom(ctx, room.ID)
	if err != nil {
		return err
	}

	moving := existing.IsPersonal != room.IsPersonal
	if moving && !s.source.User().HasEditPermission {
		return errors.NewNonAdminEditError(room.ID)
	}

	siblings, err := s.sectionRooms(ctx, room.IsPersonal)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateRoom(room, siblings); err != nil {
		return err
	}
	if moving && !room.IsPersonal {
		if err := s.checkHouseRoomLimit(len(siblings)); err != nil {
			return err
		}
	}

	name, _ := s.validator.GetValidRoomName(room.Name)
	existing.Name = name
	existing.IsPersonal = room.IsPersonal
	if err := s.repo.UpdateRoom(ctx, existing); err != nil {
		return s.missingRoom(err, room.ID)
	}

	s.logger.Info("room updated",
		zap.String("room_id", room.ID),
		zap.String("name", name),
		zap.Bool("moved", moving))

	s.afterChange(ctx, feed.Event{
		Type:       feed.EventRoomUpdated,
		RoomID:     room.ID,
		RoomName:   name,
		IsPersonal: room.IsPersonal,
	})
	return nil
}

// DeleteRoom deletes a room with its tasks. It needs edit permission.
func (s *roomServiceImpl) DeleteRoom(ctx context.Context, room domain.Room) error {
	if !s.source.User().HasEditPermission {
		return errors.NewNonAdminDeleteError(room.ID)
	}

	existing, err := s.getRoom(ctx, room.ID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRoom(ctx, existing.ID); err != nil {
		return s.missingRoom(err, room.ID)
	}

	s.logger.Info("room deleted",
		zap.String("room_id", existing.ID),
		zap.String("name", existing.Name))

	s.afterChange(ctx, feed.Event{
		Type:       feed.EventRoomDeleted,
		RoomID:     existing.ID,
		RoomName:   existing.Name,
		IsPersonal: existing.IsPersonal,
	})
	return nil
}

// SaveNewOrder stores the order of rooms within one section. Rooms of the
// section missing from rooms keep their relative order after the given ones.
func (s *roomServiceImpl) SaveNewOrder(ctx context.Context, rooms []domain.Room, isPersonal bool) error {
	current, err := s.sectionRooms(ctx, isPersonal)
	if err != nil {
		return err
	}

	inSection := make(map[string]bool, len(current))
	for _, room := range current {
		inSection[room.ID] = true
	}

	ids := make([]string, 0, len(current))
	placed := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		if !inSection[room.ID] {
			return errors.NewMissingRoomError(room.ID)
		}
		if placed[room.ID] {
			return errors.NewInvalidInputError("rooms", room.ID, "room listed more than once")
		}
		placed[room.ID] = true
		ids = append(ids, room.ID)
	}
	for _, room := range current {
		if !placed[room.ID] {
			ids = append(ids, room.ID)
		}
	}

	if err := s.repo.UpdateRoomPositions(ctx, ids); err != nil {
		return err
	}

	s.logger.Info("rooms reordered",
		zap.Bool("is_personal", isPersonal),
		zap.Strings("room_ids", ids))

	s.afterChange(ctx, feed.Event{
		Type:       feed.EventRoomsReordered,
		IsPersonal: isPersonal,
		RoomIDs:    ids,
	})
	return nil
}

// getRoom loads a stored room, reporting unknown and reserved ids as missing
func (s *roomServiceImpl) getRoom(ctx context.Context, id string) (*sqlite.Room, error) {
	if err := s.validator.ValidateRoomID(id); err != nil {
		return nil, errors.NewMissingRoomError(id)
	}
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, s.missingRoom(err, id)
	}
	return room, nil
}

func (s *roomServiceImpl) missingRoom(err error, id string) error {
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return errors.NewMissingRoomError(id)
	}
	return err
}

// sectionRooms returns the stored rooms of the house or personal section
func (s *roomServiceImpl) sectionRooms(ctx context.Context, isPersonal bool) ([]domain.Room, error) {
	dbRooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	rooms := []domain.Room{}
	for _, dbRoom := range dbRooms {
		if dbRoom.IsPersonal == isPersonal {
			rooms = append(rooms, s.mapper.Room.FromDatabase(*dbRoom, nil))
		}
	}
	return rooms, nil
}

func (s *roomServiceImpl) checkHouseRoomLimit(houseRooms int) error {
	user := s.source.User()
	if user.CanAddHouseRoom(houseRooms) {
		return nil
	}

	limit, _ := user.RoomLimit()
	if user.IsGuest() {
		return errors.NewGuestLimitError(limit)
	}
	return errors.NewRoomLimitError(limit)
}

// afterChange reloads the data source and publishes event. The change is
// already stored, so a failed reload or publish is logged and never fails it.
func (s *roomServiceImpl) afterChange(ctx context.Context, event feed.Event) {
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("room list not reloaded after change",
			zap.String("type", string(event.Type)),
			zap.String("room_id", event.RoomID),
			zap.Error(err))
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("room change not published",
			zap.String("type", string(event.Type)),
			zap.String("room_id", event.RoomID),
			zap.Error(err))
	}
}
