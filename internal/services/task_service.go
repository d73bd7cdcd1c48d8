package services

import (
	"context"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
	"chore-rooms/internal/feed"
	"chore-rooms/internal/repository/sqlite"

	"go.uber.org/zap"
)

// AddTask appends a new dirty task to a room
func (s *roomServiceImpl) AddTask(ctx context.Context, roomID, name string, hasReminder bool) (domain.RoomTask, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return domain.RoomTask{}, err
	}

	task := domain.NewRoomTask(s.newID(), name, false, hasReminder)
	if err := s.validator.ValidateTask(task); err != nil {
		return domain.RoomTask{}, err
	}
	task.Name, _ = s.validator.GetValidTaskName(name)

	dbTask := s.mapper.Task.ToDatabase(room.ID, task)
	if err := s.repo.CreateTask(ctx, &dbTask); err != nil {
		return domain.RoomTask{}, err
	}

	s.logger.Info("task added",
		zap.String("room_id", room.ID),
		zap.String("task_id", task.ID),
		zap.String("name", task.Name))

	s.afterChange(ctx, feed.Event{
		Type:       feed.EventTaskAdded,
		RoomID:     room.ID,
		RoomName:   room.Name,
		TaskID:     task.ID,
		IsPersonal: room.IsPersonal,
	})
	return task, nil
}

// SetTaskClean marks a task clean or dirty
func (s *roomServiceImpl) SetTaskClean(ctx context.Context, taskID string, clean bool) (domain.RoomTask, error) {
	return s.updateTask(ctx, taskID, func(task *sqlite.Task) {
		task.IsClean = clean
	})
}

// SetTaskReminder turns a task reminder on or off
func (s *roomServiceImpl) SetTaskReminder(ctx context.Context, taskID string, hasReminder bool) (domain.RoomTask, error) {
	return s.updateTask(ctx, taskID, func(task *sqlite.Task) {
		task.HasReminder = hasReminder
	})
}

// DeleteTask removes a task from its room
func (s *roomServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.String("room_id", task.RoomID), zap.String("task_id", task.ID))

	s.afterChange(ctx, feed.Event{
		Type:   feed.EventTaskUpdated,
		RoomID: task.RoomID,
		TaskID: task.ID,
	})
	return nil
}

func (s *roomServiceImpl) updateTask(ctx context.Context, taskID string, apply func(*sqlite.Task)) (domain.RoomTask, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return domain.RoomTask{}, err
	}

	apply(task)
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.RoomTask{}, err
	}

	s.logger.Debug("task updated",
		zap.String("task_id", task.ID),
		zap.Bool("is_clean", task.IsClean),
		zap.Bool("has_reminder", task.HasReminder))

	s.afterChange(ctx, feed.Event{
		Type:   feed.EventTaskUpdated,
		RoomID: task.RoomID,
		TaskID: task.ID,
	})
	return s.mapper.Task.FromDatabase(*task), nil
}

func (s *roomServiceImpl) getTask(ctx context.Context, taskID string) (*sqlite.Task, error) {
	if taskID == "" {
		return nil, errors.NewInvalidInputError("task_id", taskID, "task id is required")
	}
	return s.repo.GetTask(ctx, taskID)
}
