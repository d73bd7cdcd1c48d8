package sqlite

import (
	"chore-rooms/internal/errors"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRoom scans a single room from a database row.
// Columns: id, name, is_personal, position, created_at, updated_at
func ScanRoom(scanner Scanner) (*Room, error) {
	room := &Room{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&room.ID,
		&room.Name,
		&room.IsPersonal,
		&room.Position,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if room.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, errors.NewCorruptDataError("room "+room.ID+" created_at", err)
	}
	if room.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, errors.NewCorruptDataError("room "+room.ID+" updated_at", err)
	}

	return room, nil
}

// ScanRooms scans multiple rooms from database rows
func ScanRooms(rows Rows) ([]*Room, error) {
	rooms := []*Room{}
	for rows.Next() {
		room, err := ScanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// ScanTask scans a single task from a database row.
// Columns: id, room_id, name, is_clean, has_reminder, position, created_at
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var createdAt string

	err := scanner.Scan(
		&task.ID,
		&task.RoomID,
		&task.Name,
		&task.IsClean,
		&task.HasReminder,
		&task.Position,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, errors.NewCorruptDataError("task "+task.ID+" created_at", err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := []*Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
