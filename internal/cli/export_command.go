package cli

import (
	"context"
	"fmt"
	"os"

	"chore-rooms/internal/errors"
	"chore-rooms/internal/export"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute runs the export command: rooms export [format=csv|xlsx] [file=path]
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	formatName := c.app.config.Export.DefaultFormat
	path := ""
	for _, arg := range args {
		if value, ok := parseOption(arg, "format"); ok {
			formatName = value
			continue
		}
		if value, ok := parseOption(arg, "file"); ok {
			path = value
			continue
		}
		return errors.NewInvalidInputError("option", arg, "usage: rooms export [format=csv|xlsx] [file=path]")
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if path == "" {
		if format == export.FormatXLSX {
			return errors.NewInvalidInputError("file", "", "xlsx export needs file=path")
		}
		return c.app.businessAPI.Export(ctx, c.app.out, format)
	}

	return c.exportToFile(ctx, path, format)
}

func (c *ExportCommand) exportToFile(ctx context.Context, path string, format export.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return createFileError(path, err)
	}

	if err := c.app.businessAPI.Export(ctx, file, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	c.app.printf("Exported rooms to %s\n", path)
	return nil
}

func createFileError(path string, err error) error {
	if os.IsPermission(err) {
		return errors.NewPermissionError("export", path)
	}
	return errors.WrapError(err, errors.ErrorTypeInvalidInput, fmt.Sprintf("cannot create export file %s", path))
}
