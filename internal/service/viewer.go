package service

import (
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Viewer opens generated files with the host's default application
type Viewer interface {
	OpenFile(path string) error
}

type osViewer struct {
	logger *zap.Logger
	start  func(cmd *exec.Cmd) error
}

// NewViewer creates a Viewer for the current platform
func NewViewer(logger *zap.Logger) Viewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &osViewer{
		logger: logger,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// OpenFile launches the viewer and returns without waiting for it
func (v *osViewer) OpenFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot open %s: is a directory", path)
	}

	name, args := openCommand(path)
	cmd := exec.Command(name, args...)
	if err := v.start(cmd); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}

	v.logger.Debug("opened file in viewer", zap.String("path", path), zap.String("command", name))
	if cmd.Process != nil {
		// Reap the child in the background
		go func() { _ = cmd.Wait() }()
	}
	return nil
}
