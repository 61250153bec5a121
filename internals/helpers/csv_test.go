package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNaiveCSV(t *testing.T) {
	rows := ParseNaiveCSV("name,grade,teacher_name\nKelas 1A,1,Bu Sari\nKelas 2B, 2 , Pak Budi ")
	require.Len(t, rows, 2)
	assert.Equal(t, "Kelas 1A", rows[0]["name"])
	assert.Equal(t, "1", rows[0]["grade"])
	assert.Equal(t, "Pak Budi", rows[1]["teacher_name"])
	assert.Equal(t, "2", rows[1]["grade"])
}

func TestParseNaiveCSVSkipsBlankLinesAndCRLF(t *testing.T) {
	rows := ParseNaiveCSV("name,grade\r\nKelas 1A,1\r\n\r\nKelas 2B,2\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "Kelas 2B", rows[1]["name"])
}

func TestParseNaiveCSVMissingCellsAreEmpty(t *testing.T) {
	rows := ParseNaiveCSV("name,grade,teacher_name\nKelas 1A")
	require.Len(t, rows, 1)
	assert.Equal(t, "Kelas 1A", rows[0]["name"])
	assert.Equal(t, "", rows[0]["grade"])
	assert.Equal(t, "", rows[0]["teacher_name"])
}

// Quoting memang tidak didukung: koma di dalam kutip tetap dipecah.
func TestParseNaiveCSVNoQuoting(t *testing.T) {
	rows := ParseNaiveCSV("name,grade\n\"Kelas 1, Pagi\",1")
	require.Len(t, rows, 1)
	assert.Equal(t, `"Kelas 1`, rows[0]["name"])
	assert.Equal(t, `Pagi"`, rows[0]["grade"])
}
