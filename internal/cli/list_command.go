package cli

import (
	"context"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
)

const personalUpsellText = "Personal rooms are only available to you, and come with iCleanMePro. Upgrade to add personal rooms."

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	sectionType := domain.SectionHouse
	if len(args) > 1 {
		return errors.NewInvalidInputError("section", args, "usage: rooms list [house|personal]")
	}
	if len(args) == 1 {
		parsed, ok := domain.ParseSectionType(args[0])
		if !ok {
			return errors.NewInvalidInputError("section", args[0], "section must be house or personal")
		}
		sectionType = parsed
	}

	return c.listRooms(ctx, sectionType)
}

// listRooms prints the synthetic rows, then the rooms of the selected section:
//
//	1. Kitchen (2 dirty / 3 tasks) [id]
func (c *ListCommand) listRooms(ctx context.Context, sectionType domain.SectionType) error {
	listing, err := c.app.businessAPI.ListRooms(ctx, sectionType)
	if err != nil {
		return err
	}

	for _, room := range listing.TopRooms {
		c.app.printf("%s (%d)\n", room.Name, len(room.Tasks))
	}
	c.app.printf("\n%s\n", listing.Section.Name())

	if listing.ShowUpsell {
		c.app.printf("%s\n", personalUpsellText)
		return nil
	}
	if listing.NoRooms {
		c.app.printf("No rooms yet. Add one with: rooms add <name>\n")
		return nil
	}
	if len(listing.Section.Rooms) == 0 {
		c.app.printf("No rooms in this section.\n")
		return nil
	}

	for i, room := range listing.Section.Rooms {
		c.app.printf("%d. %s (%d dirty / %d tasks) [%s]\n", i+1, room.Name, room.DirtyTaskCount(), len(room.Tasks), room.ID)
	}
	return nil
}
