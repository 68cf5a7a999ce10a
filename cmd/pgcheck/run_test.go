package main

import "testing"

func TestLocatePosition(t *testing.T) {
	content := "SELECT 1;\nSELECT oops\n  FROM nowhere;\n"

	tests := []struct {
		name string
		pos  int
		line int
		col  int
	}{
		{"first character", 1, 1, 1},
		{"middle of the first line", 8, 1, 8},
		{"first character of the second line", 11, 2, 1},
		{"middle of the second line", 18, 2, 8},
		{"zero clamps to the start", 0, 1, 1},
		{"final character", 37, 3, 15},
		{"past the end walks to the final position", 999, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := locatePosition(content, tt.pos)
			if line != tt.line || col != tt.col {
				t.Errorf("locatePosition(%d) = (%d, %d), want (%d, %d)", tt.pos, line, col, tt.line, tt.col)
			}
		})
	}
}
