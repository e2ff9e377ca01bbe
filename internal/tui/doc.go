// Package tui holds terminal detection and the lipgloss styles shared by
// the text report, the annotate command and the console logger.
package tui
