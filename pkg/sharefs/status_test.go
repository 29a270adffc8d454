package sharefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOfStructured(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", smbclient.NewResponseError("create", `\\h\s\a`, types.StatusDeletePending))
	status, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, types.StatusDeletePending, status)
}

func TestStatusOfTextFallback(t *testing.T) {
	tests := []struct {
		msg    string
		want   types.Status
		wantOK bool
	}{
		{"open failed: STATUS_DIRECTORY_NOT_EMPTY (0xC0000101)", types.StatusDirectoryNotEmpty, true},
		{"(0xc0000034)", types.StatusObjectNameNotFound, true},
		{"first (0xC0000056) second (0xC0000101)", types.StatusDeletePending, true},
		{"no code here", 0, false},
		{"unterminated (0xC0000034", 0, false},
		{"not hex (0xZZZZ)", 0, false},
		{"too wide (0x1C0000034)", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			status, ok := StatusOf(errors.New(tt.msg))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, status)
		})
	}

	_, ok := StatusOf(nil)
	assert.False(t, ok)
}

func TestClassifyDelete(t *testing.T) {
	const path = `\\h\s\x`

	assert.NoError(t, classifyDelete(path, smbclient.NewResponseError("create", path, types.StatusObjectNameNotFound)))
	assert.NoError(t, classifyDelete(path, smbclient.NewResponseError("create", path, types.StatusDeletePending)))
	assert.NoError(t, classifyDelete(path, errors.New("gone (0xC0000034)")))

	err := classifyDelete(path, smbclient.NewResponseError("create", path, types.StatusDirectoryNotEmpty))
	assert.Equal(t, ErrDirectoryNotEmpty, CodeOf(err))

	err = classifyDelete(path, errors.New("busy (0xC0000101)"))
	assert.Equal(t, ErrDirectoryNotEmpty, CodeOf(err))

	err = classifyDelete(path, smbclient.NewResponseError("create", path, types.StatusObjectPathNotFound))
	assert.Equal(t, ErrDelete, CodeOf(err))

	err = classifyDelete(path, smbclient.NewResponseError("create", path, types.StatusAccessDenied))
	assert.Equal(t, ErrDelete, CodeOf(err))
	var re *smbclient.ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, types.StatusAccessDenied, re.Status)
}
