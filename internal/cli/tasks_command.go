package cli

import (
	"context"
	"strings"

	"chore-rooms/internal/api"
	"chore-rooms/internal/errors"
)

// TasksCommand handles the tasks command
type TasksCommand struct {
	app *App
}

// NewTasksCommand creates a new tasks command handler
func NewTasksCommand(app *App) *TasksCommand {
	return &TasksCommand{app: app}
}

// Execute runs the tasks command: rooms tasks [all|reminders|<room>]
func (c *TasksCommand) Execute(ctx context.Context, args []string) error {
	ref := api.AllTasksRef
	if len(args) > 0 {
		ref = strings.Join(args, " ")
	}

	listing, err := c.app.businessAPI.Tasks(ctx, ref)
	if err != nil {
		return err
	}

	c.app.printf("%s\n", listing.Title)
	if len(listing.Tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}
	for _, entry := range listing.Tasks {
		reminder := ""
		if entry.Task.HasReminder {
			reminder = " (reminder)"
		}
		c.app.printf("[%s] %s - %s%s [%s]\n", checkMark(entry.Task.IsClean), entry.RoomName, entry.Task.Name, reminder, entry.Task.ID)
	}
	return nil
}

const taskUsage = "usage: rooms task add <room> <name> [reminder] | clean <task-id> | dirty <task-id> | remind <task-id> on|off | delete <task-id>"

// TaskCommand handles the task command and its actions
type TaskCommand struct {
	app *App
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app}
}

// Execute runs the task command
func (c *TaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", args, taskUsage)
	}

	action, rest := args[0], args[1:]
	switch action {
	case "add":
		return c.addTask(ctx, rest)
	case "clean":
		return c.setClean(ctx, rest[0], true)
	case "dirty":
		return c.setClean(ctx, rest[0], false)
	case "remind":
		return c.setReminder(ctx, rest)
	case "delete":
		if err := c.app.businessAPI.DeleteTask(ctx, rest[0]); err != nil {
			return err
		}
		c.app.printf("Deleted task %s\n", rest[0])
		return nil
	default:
		return errors.NewInvalidInputError("action", action, taskUsage)
	}
}

// addTask takes the room first and the task name after; a trailing
// "reminder" word turns the reminder on
func (c *TaskCommand) addTask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", args, taskUsage)
	}
	roomRef, nameParts := args[0], args[1:]

	hasReminder := false
	if len(nameParts) > 1 && nameParts[len(nameParts)-1] == "reminder" {
		hasReminder = true
		nameParts = nameParts[:len(nameParts)-1]
	}

	entry, err := c.app.businessAPI.AddTask(ctx, roomRef, strings.Join(nameParts, " "), hasReminder)
	if err != nil {
		return err
	}
	c.app.printf("Added task %s to %s [%s]\n", entry.Task.Name, entry.RoomName, entry.Task.ID)
	return nil
}

func (c *TaskCommand) setClean(ctx context.Context, taskID string, clean bool) error {
	entry, err := c.app.businessAPI.SetTaskClean(ctx, taskID, clean)
	if err != nil {
		return err
	}
	state := "dirty"
	if entry.Task.IsClean {
		state = "clean"
	}
	c.app.printf("%s - %s is %s\n", entry.RoomName, entry.Task.Name, state)
	return nil
}

func (c *TaskCommand) setReminder(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return errors.NewInvalidInputError("arguments", args, taskUsage)
	}

	entry, err := c.app.businessAPI.SetTaskReminder(ctx, args[0], args[1] == "on")
	if err != nil {
		return err
	}
	c.app.printf("Reminder %s for %s - %s\n", args[1], entry.RoomName, entry.Task.Name)
	return nil
}
