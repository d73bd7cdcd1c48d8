package cli

import (
	"context"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
)

const reorderUsage = "usage: rooms reorder [house|personal] <room>... or rooms reorder [house|personal] move <from> <to>"

// ReorderCommand handles the reorder command
type ReorderCommand struct {
	app *App
}

// NewReorderCommand creates a new reorder command handler
func NewReorderCommand(app *App) *ReorderCommand {
	return &ReorderCommand{app: app}
}

// Execute runs the reorder command. Listed rooms move to the top in the
// given order; "move" takes 1-based positions as printed by list.
func (c *ReorderCommand) Execute(ctx context.Context, args []string) error {
	sectionType, _, rest := splitSection(args)
	if len(rest) == 0 {
		return errors.NewInvalidInputError("rooms", "", reorderUsage)
	}

	var rooms []domain.Room
	var err error
	if rest[0] == "move" {
		rooms, err = c.move(ctx, sectionType, rest[1:])
	} else {
		rooms, err = c.app.businessAPI.ReorderRooms(ctx, sectionType, rest)
	}
	if err != nil {
		return err
	}

	c.app.printf("%s\n", sectionType.Title())
	for i, room := range rooms {
		c.app.printf("%d. %s\n", i+1, room.Name)
	}
	return nil
}

func (c *ReorderCommand) move(ctx context.Context, sectionType domain.SectionType, args []string) ([]domain.Room, error) {
	if len(args) != 2 {
		return nil, errors.NewInvalidInputError("positions", args, reorderUsage)
	}
	from, err := parsePosition("from", args[0])
	if err != nil {
		return nil, err
	}
	to, err := parsePosition("to", args[1])
	if err != nil {
		return nil, err
	}
	return c.app.businessAPI.MoveRoom(ctx, sectionType, from, to)
}
