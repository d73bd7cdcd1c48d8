package cli

import (
	"context"
	"strings"

	"chore-rooms/internal/api"
	"chore-rooms/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	// AssumeYes skips the confirmation prompt
	AssumeYes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command: rooms delete <room>
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("room", "", "usage: rooms delete <room>")
	}
	return c.deleteRoom(ctx, strings.Join(args, " "))
}

func (c *DeleteCommand) deleteRoom(ctx context.Context, ref string) error {
	var confirm api.ConfirmFunc = c.confirm
	if c.AssumeYes {
		confirm = nil
	}

	preview, err := c.app.businessAPI.DeleteRoom(ctx, ref, confirm)
	if err != nil {
		if c.app.errors.IsCancelled(err) {
			c.app.printf("Delete cancelled.\n")
			return nil
		}
		return err
	}

	c.app.printf("Deleted room: %s\n", preview.Room.Name)
	return nil
}

// confirm shows what goes with the room and waits for a yes
func (c *DeleteCommand) confirm(preview api.DeletePreview) (bool, error) {
	c.app.printf("Delete %s?\n", preview.Room.Name)
	if len(preview.Tasks) > 0 {
		c.app.printf("These tasks will be deleted too:\n")
		for _, task := range preview.Tasks {
			c.app.printf("  - %s\n", task.Name)
		}
	}
	c.app.printf("Type 'y' to %s, anything else to cancel: ", strings.ToLower(preview.ButtonText))

	input, err := c.app.readLine()
	if err != nil {
		return false, err
	}
	return input == "y" || input == "Y" || strings.EqualFold(input, "yes"), nil
}
