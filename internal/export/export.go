// Package export writes the room list as CSV or as an XLSX workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a string into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", errors.NewInvalidInputError("format", s, "unsupported format")
	}
}

// Header lists the export columns in order.
var Header = []string{
	"Section",
	"Room ID",
	"Room",
	"Dirty Tasks",
	"Task ID",
	"Task",
	"Clean",
	"Reminder",
}

// Row is one exported line: a task, or a room without tasks.
type Row struct {
	Section     string
	RoomID      string
	RoomName    string
	DirtyTasks  int
	TaskID      string
	TaskName    string
	IsClean     bool
	HasReminder bool
}

// Rows flattens sections into export rows in section, room, task order.
func Rows(sections []domain.RoomSection) []Row {
	rows := []Row{}
	for _, section := range sections {
		for _, room := range section.Rooms {
			base := Row{
				Section:    section.Name(),
				RoomID:     room.ID,
				RoomName:   room.Name,
				DirtyTasks: room.DirtyTaskCount(),
			}
			if len(room.Tasks) == 0 {
				rows = append(rows, base)
				continue
			}
			for _, task := range room.Tasks {
				row := base
				row.TaskID = task.ID
				row.TaskName = task.Name
				row.IsClean = task.IsClean
				row.HasReminder = task.HasReminder
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func (r Row) record() []string {
	clean, reminder := "", ""
	if r.TaskID != "" {
		clean = yesNo(r.IsClean)
		reminder = yesNo(r.HasReminder)
	}
	return []string{
		r.Section,
		r.RoomID,
		r.RoomName,
		strconv.Itoa(r.DirtyTasks),
		r.TaskID,
		r.TaskName,
		clean,
		reminder,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Write exports sections to w in the given format
func Write(w io.Writer, format Format, sections []domain.RoomSection) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, sections)
	case FormatXLSX:
		return WriteXLSX(w, sections)
	default:
		return errors.NewInvalidInputError("format", string(format), "unsupported format")
	}
}

// WriteCSV writes a header line and one line per row
func WriteCSV(w io.Writer, sections []domain.RoomSection) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range Rows(sections) {
		if err := writer.Write(row.record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
