package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want Extensions
	}{
		{"adds dot", []string{"csv"}, Extensions{".csv"}},
		{"keeps dot", []string{".csv"}, Extensions{".csv"}},
		{"lowercases", []string{"CSV", ".Log"}, Extensions{".csv", ".log"}},
		{"trims and drops empties", []string{" csv ", "", "  "}, Extensions{".csv"}},
		{"nil in, empty out", nil, Extensions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseExtensions(tt.in))
		})
	}
}

func TestExtensionsMatch(t *testing.T) {
	exts := NormaliseExtensions([]string{"csv", "log"})

	assert.True(t, exts.Match("data.csv"))
	assert.True(t, exts.Match("DATA.CSV"), "case-insensitive")
	assert.True(t, exts.Match("nested/dir/app.log"))
	assert.False(t, exts.Match("data.csv.bak"))
	assert.False(t, exts.Match("archive.zip"))
	assert.False(t, exts.Match(""))
}
