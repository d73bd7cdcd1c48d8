package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSections() []domain.RoomSection {
	return []domain.RoomSection{
		domain.NewRoomSection(domain.SectionHouse, []domain.Room{
			{ID: "k", Name: "Kitchen", Tasks: []domain.RoomTask{
				domain.NewRoomTask("t1", "Dishes", false, true),
				domain.NewRoomTask("t2", "Floor", true, false),
			}},
			{ID: "g", Name: "Garage"},
		}),
		domain.NewRoomSection(domain.SectionPersonal, []domain.Room{
			{ID: "o", Name: "Office", IsPersonal: true, Tasks: []domain.RoomTask{
				domain.NewRoomTask("t3", "Desk, drawers", false, false),
			}},
		}),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{" XLSX ", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRows(t *testing.T) {
	want := []Row{
		{Section: "House Rooms", RoomID: "k", RoomName: "Kitchen", DirtyTasks: 1, TaskID: "t1", TaskName: "Dishes", HasReminder: true},
		{Section: "House Rooms", RoomID: "k", RoomName: "Kitchen", DirtyTasks: 1, TaskID: "t2", TaskName: "Floor", IsClean: true},
		{Section: "House Rooms", RoomID: "g", RoomName: "Garage"},
		{Section: "Personal Rooms", RoomID: "o", RoomName: "Office", DirtyTasks: 1, TaskID: "t3", TaskName: "Desk, drawers"},
	}

	if diff := cmp.Diff(want, Rows(sampleSections())); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Rows(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleSections()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"House Rooms", "k", "Kitchen", "1", "t1", "Dishes", "No", "Yes"}, records[1])
	assert.Equal(t, []string{"House Rooms", "g", "Garage", "0", "", "", "", ""}, records[3])
	assert.Equal(t, "Desk, drawers", records[4][5])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleSections()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"House Rooms", "k", "Kitchen", "1", "t2", "Floor", "Yes", "No"}, rows[2])
	assert.Equal(t, []string{"House Rooms", "g", "Garage", "0"}, rows[3])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("pdf"), sampleSections())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Zero(t, buf.Len())
}
