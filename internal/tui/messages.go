package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenSettingsFormMsg tells the settings screen to open its edit form
type OpenSettingsFormMsg struct{}

// firstRunCheckMsg reports whether bank and address settings exist
type firstRunCheckMsg struct {
	configured bool
}

// invoiceGeneratedMsg carries the result of a render
type invoiceGeneratedMsg struct {
	path string
	err  error
}

// fileOpenedMsg carries the result of launching the viewer
type fileOpenedMsg struct {
	path string
	err  error
}
