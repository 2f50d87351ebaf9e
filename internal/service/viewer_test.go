package service

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestViewer_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "INV_1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3"), 0644))

	var launched *exec.Cmd
	v := &osViewer{
		logger: zap.NewNop(),
		start: func(cmd *exec.Cmd) error {
			launched = cmd
			return nil
		},
	}

	require.NoError(t, v.OpenFile(path))
	require.NotNil(t, launched)
	assert.Equal(t, path, launched.Args[len(launched.Args)-1])

	name, _ := openCommand(path)
	assert.Equal(t, name, launched.Args[0])
}

func TestViewer_MissingFile(t *testing.T) {
	called := false
	v := &osViewer{logger: zap.NewNop(), start: func(*exec.Cmd) error { called = true; return nil }}

	err := v.OpenFile(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, called)

	assert.Error(t, v.OpenFile(t.TempDir()))
}

func TestViewer_LaunchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "INV_1.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	v := &osViewer{logger: zap.NewNop(), start: func(*exec.Cmd) error { return exec.ErrNotFound }}
	err := v.OpenFile(path)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
