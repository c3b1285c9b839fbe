// Package msgs defines shared message types for TUI view transitions.
package msgs

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// GoToFilePickerMsg signals transition to the file picker view.
type GoToFilePickerMsg struct{}

// FileSelectedMsg is sent when a schedule file is selected in the file
// picker. Receiving it discards any prior parse result and AI response.
type FileSelectedMsg struct {
	Path string
}
