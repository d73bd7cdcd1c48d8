package cli

import (
	"context"
	"strconv"
	"time"

	"chore-rooms/internal/errors"
	"chore-rooms/internal/feed"
)

const defaultEventCount = 20

// EventsCommand handles the events command
type EventsCommand struct {
	app *App
}

// NewEventsCommand creates a new events command handler
func NewEventsCommand(app *App) *EventsCommand {
	return &EventsCommand{app: app}
}

// Execute runs the events command: rooms events [count]
func (c *EventsCommand) Execute(ctx context.Context, args []string) error {
	count := int64(defaultEventCount)
	if len(args) > 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: rooms events [count]")
	}
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || n < 1 {
			return errors.NewInvalidInputError("count", args[0], "count must be a positive number")
		}
		count = n
	}

	events, err := c.app.businessAPI.RecentEvents(ctx, count)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		c.app.printf("No events found\n")
		return nil
	}
	for _, event := range events {
		c.app.printf("%s %s %s\n", event.At.Local().Format(time.DateTime), event.Type, describeEvent(event))
	}
	return nil
}

func describeEvent(event feed.Event) string {
	switch event.Type {
	case feed.EventRoomsReordered:
		return strconv.Itoa(len(event.RoomIDs)) + " rooms"
	case feed.EventTaskAdded, feed.EventTaskUpdated:
		if event.RoomName != "" {
			return event.RoomName + " / " + event.TaskID
		}
		return event.TaskID
	default:
		if event.RoomName != "" {
			return event.RoomName
		}
		return event.RoomID
	}
}
