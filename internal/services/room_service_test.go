package services

import (
	"context"
	"strings"
	"testing"

	"chore-rooms/internal/datasource"
	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
	"chore-rooms/internal/feed"
	"chore-rooms/internal/repository/sqlite"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingPublisher keeps published events in memory
type recordingPublisher struct {
	events []feed.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event feed.Event) error {
	p.events = append(p.events, event)
	return p.err
}

type testEnv struct {
	repo      sqlite.Repository
	source    *datasource.RoomDataSource
	publisher *recordingPublisher
	service   RoomService
}

func setupRoomService(t *testing.T, user domain.RoomUser) *testEnv {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	source := datasource.New(user)
	publisher := &recordingPublisher{}
	service := NewRoomService(repo, source, nil, publisher, zap.NewNop())
	return &testEnv{repo: repo, source: source, publisher: publisher, service: service}
}

func (e *testEnv) addRooms(t *testing.T, isPersonal bool, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, e.service.SaveNewRoom(context.Background(), domain.NewRoom(name, isPersonal)))
	}
}

func names(rooms []domain.Room) []string {
	out := []string{}
	for _, room := range rooms {
		out = append(out, room.Name)
	}
	return out
}

func TestRoomService_SaveNewRoom(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	ctx := context.Background()

	room := domain.Room{ID: "kitchen-id", Name: "  Kitchen ", Tasks: []domain.RoomTask{
		domain.NewRoomTask("", "Dishes", false, true),
	}}
	require.NoError(t, env.service.SaveNewRoom(ctx, room))

	house := env.source.HouseSection()
	require.Len(t, house.Rooms, 1)
	assert.Equal(t, "kitchen-id", house.Rooms[0].ID)
	assert.Equal(t, "Kitchen", house.Rooms[0].Name)
	require.Len(t, house.Rooms[0].Tasks, 1)
	assert.NotEmpty(t, house.Rooms[0].Tasks[0].ID)
	assert.True(t, house.Rooms[0].Tasks[0].HasReminder)

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, feed.EventRoomCreated, env.publisher.events[0].Type)
	assert.Equal(t, "Kitchen", env.publisher.events[0].RoomName)
}

func TestRoomService_SaveNewRoomErrors(t *testing.T) {
	tests := []struct {
		name      string
		tier      domain.UserTier
		existing  []string
		room      domain.Room
		wantError errors.ErrorType
	}{
		{"empty name", domain.TierPro, nil, domain.NewRoom("  ", false), errors.ErrorTypeEmptyName},
		{"name too long", domain.TierPro, nil, domain.NewRoom(strings.Repeat("x", 51), false), errors.ErrorTypeNameTooLong},
		{"duplicate name", domain.TierPro, []string{"Kitchen"}, domain.NewRoom("kitchen", false), errors.ErrorTypeNameTaken},
		{"guest limit", domain.TierGuest, []string{"a", "b", "c", "d"}, domain.NewRoom("e", false), errors.ErrorTypeGuestLimit},
		{"normal limit", domain.TierNormal, []string{"a", "b", "c", "d", "e", "f", "g"}, domain.NewRoom("h", false), errors.ErrorTypeRoomLimit},
		{"reserved id", domain.TierPro, nil, domain.Room{ID: domain.AllRoomID, Name: "All"}, errors.ErrorTypeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRoomService(t, domain.NewRoomUser(tt.tier, true))
			env.addRooms(t, false, tt.existing...)
			published := len(env.publisher.events)

			err := env.service.SaveNewRoom(context.Background(), tt.room)

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.wantError), "got %v", err)
			assert.Len(t, env.source.HouseSection().Rooms, len(tt.existing))
			assert.Len(t, env.publisher.events, published)
		})
	}
}

func TestRoomService_SaveNewRoomTaskErrors(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []domain.RoomTask
		wantError errors.ErrorType
	}{
		{"empty task name", []domain.RoomTask{domain.NewRoomTask("", "  ", false, false)}, errors.ErrorTypeEmptyName},
		{"task name too long", []domain.RoomTask{domain.NewRoomTask("", strings.Repeat("x", 101), false, false)}, errors.ErrorTypeNameTooLong},
		{"control character", []domain.RoomTask{domain.NewRoomTask("", "Mop\x00", false, false)}, errors.ErrorTypeValidation},
		{"duplicate task id", []domain.RoomTask{
			domain.NewRoomTask("t1", "Dishes", false, false),
			domain.NewRoomTask("t1", "Mop", false, false),
		}, errors.ErrorTypeInvalidInput},
		{"second task invalid", []domain.RoomTask{
			domain.NewRoomTask("", "Dishes", false, false),
			domain.NewRoomTask("", "", false, false),
		}, errors.ErrorTypeEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, true))
			ctx := context.Background()

			room := domain.NewRoom("Kitchen", false)
			room.Tasks = tt.tasks
			err := env.service.SaveNewRoom(ctx, room)

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.wantError), "got %v", err)
			rooms, err := env.repo.ListRooms(ctx)
			require.NoError(t, err)
			assert.Empty(t, rooms)
			assert.Empty(t, env.publisher.events)
		})
	}
}

func TestRoomService_SaveNewRoomTrimsTaskNames(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	ctx := context.Background()

	room := domain.NewRoom("Kitchen", false)
	room.Tasks = []domain.RoomTask{domain.NewRoomTask("", "  Dishes\t", false, false)}
	require.NoError(t, env.service.SaveNewRoom(ctx, room))

	tasks, err := env.repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Dishes", tasks[0].Name)
}

func TestRoomService_SaveNewRoomFailedTaskInsertStoresNothing(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	ctx := context.Background()
	require.NoError(t, env.repo.CreateRoom(ctx, &sqlite.Room{ID: "g", Name: "Garage"}))
	require.NoError(t, env.repo.CreateTask(ctx, &sqlite.Task{ID: "t1", RoomID: "g", Name: "Sweep"}))

	room := domain.Room{ID: "kitchen-id", Name: "Kitchen", Tasks: []domain.RoomTask{
		domain.NewRoomTask("t0", "Dishes", false, false),
		domain.NewRoomTask("t1", "Mop", false, false),
	}}
	err := env.service.SaveNewRoom(ctx, room)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase), "got %v", err)

	_, err = env.repo.GetRoom(ctx, "kitchen-id")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Empty(t, env.publisher.events)

	// Retrying under the same name is not reported as taken
	room.Tasks[1].ID = ""
	require.NoError(t, env.service.SaveNewRoom(ctx, room))
	assert.Equal(t, []string{"Garage", "Kitchen"}, names(env.source.HouseSection().Rooms))
	assert.Len(t, env.source.HouseSection().Rooms[1].Tasks, 2)
}

func TestRoomService_LimitOnlyAppliesToHouseRooms(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierGuest, true))
	env.addRooms(t, false, "a", "b", "c", "d")

	env.addRooms(t, true, "Office", "Studio", "Closet", "Desk", "Locker")
	assert.Len(t, env.source.PersonalSection().Rooms, 5)

	err := env.service.SaveNewRoom(context.Background(), domain.NewRoom("Porch", false))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGuestLimit))
}

func TestRoomService_ProIsNeverLimited(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, true))
	for i := 0; i < 20; i++ {
		env.addRooms(t, false, "Room "+string(rune('A'+i)))
	}
	assert.Len(t, env.source.HouseSection().Rooms, 20)
}

func TestRoomService_SameNameInOtherSection(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	env.addRooms(t, false, "Office")
	env.addRooms(t, true, "Office")

	assert.Equal(t, []string{"Office"}, names(env.source.HouseSection().Rooms))
	assert.Equal(t, []string{"Office"}, names(env.source.PersonalSection().Rooms))
}

func TestRoomService_UpdateRoom(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	env.addRooms(t, false, "Kitchen", "Bathroom")
	ctx := context.Background()

	kitchen := env.source.HouseSection().Rooms[0]
	kitchen.Name = "Big Kitchen"
	require.NoError(t, env.service.UpdateRoom(ctx, kitchen))
	assert.Equal(t, []string{"Big Kitchen", "Bathroom"}, names(env.source.HouseSection().Rooms))

	kitchen.Name = "big kitchen"
	require.NoError(t, env.service.UpdateRoom(ctx, kitchen), "renaming to itself is allowed")

	kitchen.Name = "Bathroom"
	err := env.service.UpdateRoom(ctx, kitchen)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNameTaken))

	err = env.service.UpdateRoom(ctx, domain.Room{ID: "missing", Name: "Ghost"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMissingRoom))

	err = env.service.UpdateRoom(ctx, domain.Room{ID: domain.ReminderRoomID, Name: "Reminders"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMissingRoom))
}

func TestRoomService_UpdateRoomMovesSection(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierGuest, true))
	env.addRooms(t, false, "a", "b", "c", "d")
	env.addRooms(t, true, "Office")
	ctx := context.Background()

	office := env.source.PersonalSection().Rooms[0]
	office.IsPersonal = false
	err := env.service.UpdateRoom(ctx, office)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGuestLimit))

	a := env.source.HouseSection().Rooms[0]
	a.IsPersonal = true
	require.NoError(t, env.service.UpdateRoom(ctx, a))
	assert.Equal(t, []string{"b", "c", "d"}, names(env.source.HouseSection().Rooms))

	require.NoError(t, env.service.UpdateRoom(ctx, office))
	assert.Equal(t, []string{"b", "c", "d", "Office"}, names(env.source.HouseSection().Rooms))
}

func TestRoomService_UpdateRoomMoveNeedsPermission(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, false))
	env.addRooms(t, false, "Kitchen")
	ctx := context.Background()

	kitchen := env.source.HouseSection().Rooms[0]
	kitchen.Name = "Cookery"
	require.NoError(t, env.service.UpdateRoom(ctx, kitchen))

	kitchen.IsPersonal = true
	err := env.service.UpdateRoom(ctx, kitchen)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNonAdminEdit))
}

func TestRoomService_DeleteRoom(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	env.addRooms(t, false, "Kitchen", "Garage")
	ctx := context.Background()

	kitchen := env.source.HouseSection().Rooms[0]
	_, err := env.service.AddTask(ctx, kitchen.ID, "Dishes", false)
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteRoom(ctx, kitchen))
	assert.Equal(t, []string{"Garage"}, names(env.source.HouseSection().Rooms))

	tasks, err := env.repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	err = env.service.DeleteRoom(ctx, kitchen)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMissingRoom))

	last := env.publisher.events[len(env.publisher.events)-1]
	assert.Equal(t, feed.EventRoomDeleted, last.Type)
	assert.Equal(t, kitchen.ID, last.RoomID)
}

func TestRoomService_DeleteRoomNeedsPermission(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, true))
	env.addRooms(t, false, "Kitchen")
	env.source.SetUser(domain.NewRoomUser(domain.TierPro, false))

	err := env.service.DeleteRoom(context.Background(), env.source.HouseSection().Rooms[0])

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNonAdminDelete))
	assert.Len(t, env.source.HouseSection().Rooms, 1)
}

func TestRoomService_SaveNewOrder(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, true))
	env.addRooms(t, false, "Kitchen", "Bathroom", "Garage")
	env.addRooms(t, true, "Office")
	ctx := context.Background()

	house := env.source.HouseSection().Rooms
	require.NoError(t, env.service.SaveNewOrder(ctx, []domain.Room{house[2], house[0], house[1]}, false))
	assert.Equal(t, []string{"Garage", "Kitchen", "Bathroom"}, names(env.source.HouseSection().Rooms))

	house = env.source.HouseSection().Rooms
	require.NoError(t, env.service.SaveNewOrder(ctx, []domain.Room{house[2]}, false))
	assert.Equal(t, []string{"Bathroom", "Garage", "Kitchen"}, names(env.source.HouseSection().Rooms))

	office := env.source.PersonalSection().Rooms[0]
	err := env.service.SaveNewOrder(ctx, []domain.Room{office}, false)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMissingRoom))

	err = env.service.SaveNewOrder(ctx, []domain.Room{house[0], house[0]}, false)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	last := env.publisher.events[len(env.publisher.events)-1]
	assert.Equal(t, feed.EventRoomsReordered, last.Type)
	assert.Len(t, last.RoomIDs, 3)
}

func TestRoomService_NewRoomAppendsToSection(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierPro, true))
	env.addRooms(t, false, "Kitchen", "Bathroom")
	ctx := context.Background()

	house := env.source.HouseSection().Rooms
	require.NoError(t, env.service.SaveNewOrder(ctx, []domain.Room{house[1], house[0]}, false))
	env.addRooms(t, false, "Attic")

	assert.Equal(t, []string{"Bathroom", "Kitchen", "Attic"}, names(env.source.HouseSection().Rooms))
}

func TestRoomService_Load(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	ctx := context.Background()
	require.NoError(t, env.repo.CreateRoom(ctx, &sqlite.Room{ID: "k", Name: "Kitchen"}))
	require.NoError(t, env.repo.CreateRoom(ctx, &sqlite.Room{ID: "o", Name: "Office", IsPersonal: true}))
	require.NoError(t, env.repo.CreateTask(ctx, &sqlite.Task{ID: "t1", RoomID: "k", Name: "Dishes"}))

	notified := 0
	env.source.Subscribe(func(datasource.Snapshot) { notified++ })

	require.NoError(t, env.service.Load(ctx))

	assert.Equal(t, 1, notified)
	assert.Equal(t, []string{"Kitchen"}, names(env.source.HouseSection().Rooms))
	assert.Equal(t, []string{"Office"}, names(env.source.PersonalSection().Rooms))
	assert.Len(t, env.source.HouseSection().Rooms[0].Tasks, 1)
}

func TestRoomService_FeedFailureDoesNotFailChange(t *testing.T) {
	env := setupRoomService(t, domain.NewRoomUser(domain.TierNormal, true))
	env.publisher.err = errors.NewTimeoutError("publish", "1s")

	require.NoError(t, env.service.SaveNewRoom(context.Background(), domain.NewRoom("Kitchen", false)))
	assert.Len(t, env.source.HouseSection().Rooms, 1)
}

func TestRoomService_PublishesToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisFeed := feed.NewRedisFeed(client, "rooms:events", 100, zap.NewNop())
	t.Cleanup(func() { redisFeed.Close() })

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	source := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
	service := NewRoomService(repo, source, nil, redisFeed, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, service.SaveNewRoom(ctx, domain.NewRoom("Kitchen", false)))
	require.NoError(t, service.DeleteRoom(ctx, source.HouseSection().Rooms[0]))

	events, err := redisFeed.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, feed.EventRoomDeleted, events[0].Type)
	assert.Equal(t, feed.EventRoomCreated, events[1].Type)
}

// failingTasksRepo fails task listing once armed, which breaks reloads
type failingTasksRepo struct {
	sqlite.Repository
	fail bool
}

func (r *failingTasksRepo) ListTasks(ctx context.Context) ([]*sqlite.Task, error) {
	if r.fail {
		return nil, errors.NewDatabaseError("list tasks", assert.AnError)
	}
	return r.Repository.ListTasks(ctx)
}

func TestRoomService_ReloadFailureDoesNotFailChange(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	core, logs := observer.New(zap.WarnLevel)
	failing := &failingTasksRepo{Repository: repo, fail: true}
	publisher := &recordingPublisher{}
	source := datasource.New(domain.NewRoomUser(domain.TierNormal, true))
	service := NewRoomService(failing, source, nil, publisher, zap.New(core))
	ctx := context.Background()

	require.NoError(t, service.SaveNewRoom(ctx, domain.NewRoom("Kitchen", false)))

	stored, err := repo.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Len(t, publisher.events, 1, "the change is still published")

	reloadLogs := logs.FilterMessage("room list not reloaded after change").All()
	require.Len(t, reloadLogs, 1)
	assert.Equal(t, string(feed.EventRoomCreated), reloadLogs[0].ContextMap()["type"])

	failing.fail = false
	require.NoError(t, service.Load(ctx))
	assert.Equal(t, []string{"Kitchen"}, names(source.HouseSection().Rooms))
}
