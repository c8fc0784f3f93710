package imports

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheetFile adapts a byte slice to the multipart.File interface.
type sheetFile struct {
	*bytes.Reader
}

func (sheetFile) Close() error { return nil }

func newSheetFile(data string) sheetFile {
	return sheetFile{bytes.NewReader([]byte(data))}
}

var _ multipart.File = sheetFile{}

func TestParseSheetCSV(t *testing.T) {
	csvData := "File Code,Tour Name,Pax,ManagerEmail\n" +
		"TF001,Golden Triangle,4,ketan@travelcrm.example\n" +
		",,,\n" +
		"TF002,Kerala Backwaters,2,priya@travelcrm.example\n"

	rows, err := ParseSheet(newSheetFile(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-empty row must be skipped")

	assert.Equal(t, "TF001", rows[0]["file_code"])
	assert.Equal(t, "Golden Triangle", rows[0]["tour_name"])
	assert.Equal(t, "4", rows[0]["pax"])
	assert.Equal(t, "ketan@travelcrm.example", rows[0]["manager_email"])
	assert.Equal(t, "TF002", rows[1]["file_code"])
}

func TestParseSheetRequiresDataRow(t *testing.T) {
	_, err := ParseSheet(newSheetFile("File Code,Tour Name\n"))
	assert.Error(t, err)
}

func TestParseSheetRaggedRows(t *testing.T) {
	csvData := "name,city,phone\n" +
		"Taj Palace,Delhi\n" +
		"Leela,Mumbai,022-1234,extra\n"

	rows, err := ParseSheet(newSheetFile(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["phone"])
	assert.Equal(t, "022-1234", rows[1]["phone"])
}

func TestSheetRowFirst(t *testing.T) {
	row := SheetRow{"agent_email": "a@x.example", "manager_name": ""}
	assert.Equal(t, "a@x.example", row.First("manager_email", "agent_email"))
	assert.Equal(t, "", row.First("manager_name", "agent_name"))
}
