//go:build windows

package service

func openCommand(path string) (string, []string) {
	return "cmd", []string{"/C", "start", "", path}
}
