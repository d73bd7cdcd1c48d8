package cli

import (
	"context"
	"strings"

	"chore-rooms/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command: rooms add [house|personal] <name>
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	sectionType, _, rest := splitSection(args)
	if len(rest) == 0 {
		return errors.NewInvalidInputError("name", "", "usage: rooms add [house|personal] <name>")
	}

	sheet, err := c.app.businessAPI.AddRoom(ctx, strings.Join(rest, " "), sectionType.IsPersonal())
	if err != nil {
		return err
	}

	c.app.printf("Added %s to %s [%s]\n", sheet.Room.Name, sectionType.Title(), sheet.Room.ID)
	c.app.printf("%s\n", sheet.Message)
	return nil
}
