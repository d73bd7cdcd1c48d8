package cli

import (
	"context"
	"strings"

	"chore-rooms/internal/errors"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	app *App
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{app: app}
}

// Execute runs the rename command: rooms rename <room> <new name>
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: rooms rename <room> <new name>")
	}

	sheet, err := c.app.businessAPI.RenameRoom(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	c.app.printf("Renamed %s to %s\n", args[0], sheet.Room.Name)
	return nil
}
