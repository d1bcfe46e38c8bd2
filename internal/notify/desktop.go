package notify

import "github.com/gen2brain/beeep"

// DesktopNotifier delivers notifications through the operating system's
// notification facility via beeep.
type DesktopNotifier struct{}

// RequestPermission reports whether desktop notifications may be shown.
// beeep needs no explicit permission grant on the supported platforms, so
// this always succeeds.
func (d DesktopNotifier) RequestPermission() bool {
	return true
}

// Notify shows a desktop notification. Best-effort; the caller ignores
// failures.
func (d DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}
