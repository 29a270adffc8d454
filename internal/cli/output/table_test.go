package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("NAME", "KIND")
	tbl.AddRow("docs", "directory")
	tbl.AddRow("a.txt", "file")

	require.NoError(t, PrintTable(&buf, tbl))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "docs")
	assert.Contains(t, lines[2], "file")
}

func TestFields(t *testing.T) {
	var f Fields
	f.Add("Size", "3")
	f.Add("Kind", "file")

	assert.Nil(t, f.Headers())
	assert.Equal(t, [][]string{{"Size:", "3"}, {"Kind:", "file"}}, f.Rows())

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, f))
	assert.Contains(t, buf.String(), "Kind:")
	assert.NotContains(t, buf.String(), "KIND")
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 40, "3.0 TiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.n), "HumanSize(%d)", tt.n)
	}
}
