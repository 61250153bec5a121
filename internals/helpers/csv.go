package helper

import (
	"strings"
)

// ParseNaiveCSV membaca teks CSV dengan baris header.
// Pemisahan kolom memakai koma polos tanpa dukungan quoting — perilaku ini
// mengikuti kontrak import yang ada (header: name,grade,teacher_name dst.),
// jadi nilai yang mengandung koma memang tidak didukung.
func ParseNaiveCSV(text string) []map[string]string {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n")), "\n")
	if len(lines) == 0 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = strings.TrimSpace(cells[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
