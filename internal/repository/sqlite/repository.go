package sqlite

import (
	"context"
	"database/sql"
	"time"

	"chore-rooms/internal/errors"
	"chore-rooms/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Room operations
	CreateRoom(ctx context.Context, room *Room) error
	CreateRoomWithTasks(ctx context.Context, room *Room, tasks []*Task) error
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	CountRooms(ctx context.Context, isPersonal bool) (int, error)
	UpdateRoom(ctx context.Context, room *Room) error
	UpdateRoomPositions(ctx context.Context, ids []string) error
	DeleteRoom(ctx context.Context, id string) error

	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	ListTasksForRoom(ctx context.Context, roomID string) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error

	// Utility
	Close() error
}

// Options tunes per-operation deadlines. Zero values disable the deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath, runs migrations and applies timeouts
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps :memory: databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return NewWithDB(db, opts), nil
}

// NewWithDB wraps an already opened and migrated database
func NewWithDB(db *sql.DB, opts Options) *SQLiteRepository {
	return &SQLiteRepository{db: db, opts: opts, now: time.Now}
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

const roomColumns = `id, name, is_personal, position, created_at, updated_at`

const taskColumns = `id, room_id, name, is_clean, has_reminder, position, created_at`

// CreateRoom inserts a room at the end of its section
func (r *SQLiteRepository) CreateRoom(ctx context.Context, room *Room) error {
	return r.CreateRoomWithTasks(ctx, room, nil)
}

// CreateRoomWithTasks inserts a room and its tasks in one transaction.
// Nothing is stored when any insert fails.
func (r *SQLiteRepository) CreateRoomWithTasks(ctx context.Context, room *Room, tasks []*Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	return WithTx(ctx, r.db, "create room", func(tx *sql.Tx) error {
		if err := insertRoom(ctx, tx, room); err != nil {
			return err
		}
		for _, task := range tasks {
			task.RoomID = room.ID
			if task.CreatedAt.IsZero() {
				task.CreatedAt = now
			}
			if err := insertTask(ctx, tx, task); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertRoom(ctx context.Context, tx *sql.Tx, room *Room) error {
	next, err := QueryInt(ctx, tx, "next room position",
		`SELECT MAX(position) + 1 FROM rooms WHERE is_personal = ?`, FormatBoolForDB(room.IsPersonal))
	if err != nil {
		return err
	}
	room.Position = next

	query := `
	INSERT INTO rooms (` + roomColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`
	return Execute(ctx, tx, "create room", query,
		room.ID, room.Name, FormatBoolForDB(room.IsPersonal), room.Position,
		FormatTimeForDB(room.CreatedAt), FormatTimeForDB(room.UpdatedAt))
}

// GetRoom retrieves a room by ID
func (r *SQLiteRepository) GetRoom(ctx context.Context, id string) (*Room, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanRoom, "room", id, id)
}

// ListRooms retrieves all rooms, house rooms first, each section in position order
func (r *SQLiteRepository) ListRooms(ctx context.Context) ([]*Room, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT ` + roomColumns + `
	FROM rooms
	ORDER BY is_personal ASC, position ASC, created_at ASC, rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanRooms, "rooms")
}

// CountRooms returns the number of rooms in the house or personal section
func (r *SQLiteRepository) CountRooms(ctx context.Context, isPersonal bool) (int, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return QueryInt(ctx, r.db, "count rooms",
		`SELECT COUNT(*) FROM rooms WHERE is_personal = ?`, FormatBoolForDB(isPersonal))
}

// UpdateRoom renames a room or moves it between sections.
// A room moved to the other section is placed at its end.
func (r *SQLiteRepository) UpdateRoom(ctx context.Context, room *Room) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	room.UpdatedAt = r.now()
	isPersonal := FormatBoolForDB(room.IsPersonal)
	query := `
	UPDATE rooms
	SET name = ?,
		position = CASE WHEN is_personal = ? THEN position
			ELSE (SELECT COALESCE(MAX(position) + 1, 0) FROM rooms WHERE is_personal = ?) END,
		is_personal = ?,
		updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "room", room.ID,
		room.Name, isPersonal, isPersonal, isPersonal, FormatTimeForDB(room.UpdatedAt), room.ID)
}

// UpdateRoomPositions stores ids[i] at position i. Every id must exist.
func (r *SQLiteRepository) UpdateRoomPositions(ctx context.Context, ids []string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	updatedAt := FormatTimeForDB(r.now())
	return WithTx(ctx, r.db, "reorder rooms", func(tx *sql.Tx) error {
		for position, id := range ids {
			query := `UPDATE rooms SET position = ?, updated_at = ? WHERE id = ?`
			if err := ExecuteWithRowsAffected(ctx, tx, query, "room", id, position, updatedAt, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRoom deletes a room and its tasks
func (r *SQLiteRepository) DeleteRoom(ctx context.Context, id string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	return WithTx(ctx, r.db, "delete room", func(tx *sql.Tx) error {
		if err := Execute(ctx, tx, "delete room tasks", `DELETE FROM tasks WHERE room_id = ?`, id); err != nil {
			return err
		}
		return ExecuteWithRowsAffected(ctx, tx, `DELETE FROM rooms WHERE id = ?`, "room", id, id)
	})
}

// CreateTask appends a task to its room
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = r.now()
	}

	return WithTx(ctx, r.db, "create task", func(tx *sql.Tx) error {
		return insertTask(ctx, tx, task)
	})
}

func insertTask(ctx context.Context, tx *sql.Tx, task *Task) error {
	next, err := QueryInt(ctx, tx, "next task position",
		`SELECT MAX(position) + 1 FROM tasks WHERE room_id = ?`, task.RoomID)
	if err != nil {
		return err
	}
	task.Position = next

	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, tx, "create task", query,
		task.ID, task.RoomID, task.Name, FormatBoolForDB(task.IsClean), FormatBoolForDB(task.HasReminder),
		task.Position, FormatTimeForDB(task.CreatedAt))
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasks retrieves all tasks grouped by room in position order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	ORDER BY room_id ASC, position ASC, rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// ListTasksForRoom retrieves the tasks of one room in position order
func (r *SQLiteRepository) ListTasksForRoom(ctx context.Context, roomID string) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE room_id = ?
	ORDER BY position ASC, rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", roomID)
}

// UpdateTask updates a task's name and flags
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET name = ?, is_clean = ?, has_reminder = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.Name, FormatBoolForDB(task.IsClean), FormatBoolForDB(task.HasReminder), task.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}
