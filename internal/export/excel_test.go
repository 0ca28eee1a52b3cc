package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"labtrack/internal/tracking"
)

func strPtr(s string) *string { return &s }

func sampleRows() []tracking.ExportRow {
	exit := "2024-01-01 10:00:00"
	return []tracking.ExportRow{
		{
			PersonID: 2, Name: "Bob", Email: "b@x.com",
			LabName: "Physics", EntryTime: "2024-01-01 11:00:00", Status: "IN LAB",
		},
		{
			PersonID: 1, Name: "Alice", Email: "a@x.com",
			Phone: strPtr("555"), Department: strPtr("Chemistry"),
			LabName: "Chem", EntryTime: "2024-01-01 09:00:00", ExitTime: &exit, Status: "LEFT LAB",
		},
	}
}

func TestRecordsWorkbook(t *testing.T) {
	generated := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	data, err := Records(sampleRows(), generated)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Lab Records", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Lab Records")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per record")
	assert.Equal(t, []string{"person_id", "name", "email", "phone", "department", "lab_name", "entry_time", "exit_time", "status"}, rows[0])
	assert.Equal(t, "Bob", rows[1][1])
	assert.Equal(t, "IN LAB", rows[1][8])
	assert.Equal(t, "LEFT LAB", rows[2][8])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Total Records", "2"}, summary[1])
	assert.Equal(t, []string{"Current Lab Occupants", "1"}, summary[2])
	assert.Equal(t, []string{"Unique Persons", "2"}, summary[3])
	assert.Equal(t, []string{"Date Generated", "2024-01-02 15:04:05"}, summary[4])
}

func TestRecordsWorkbookEmpty(t *testing.T) {
	data, err := Records(nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Lab Records")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Records", "0"}, summary[1])
}

func TestCurrentStatusWorkbook(t *testing.T) {
	rows := []tracking.StatusRow{
		{Name: "Bob", Email: "b@x.com", LabName: "Physics", EntryTime: "2024-01-01 11:00:00"},
	}

	data, err := CurrentStatus(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Current Lab Status"}, f.GetSheetList())

	got, err := f.GetRows("Current Lab Status")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"name", "email", "department", "phone", "lab_name", "entry_time"}, got[0])
	assert.Equal(t, "Bob", got[1][0])
}

func TestFilenames(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "lab_records_export_20240102_150405.xlsx", RecordsFilename(at))
	assert.Equal(t, "current_lab_status_20240102_150405.xlsx", StatusFilename(at))
}
