//go:build darwin

package service

func openCommand(path string) (string, []string) {
	return "open", []string{path}
}
