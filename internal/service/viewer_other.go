//go:build !darwin && !windows

package service

func openCommand(path string) (string, []string) {
	return "xdg-open", []string{path}
}
