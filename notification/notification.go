// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/albertborsos/mergeflow/logger"
)

// notifier is swappable for tests.
var notifier = beeep.Notify

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Use empty string for icon - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// MergeCompleted sends a notification that a merge run finished.
func MergeCompleted(target string, merged int) error {
	noun := "branches"
	if merged == 1 {
		noun = "branch"
	}
	return Send("mergeflow", fmt.Sprintf("%d %s merged into %s", merged, noun, target))
}

// setNotifier replaces the notifier function. Tests only.
func setNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// resetNotifier restores the real beeep notifier. Tests only.
func resetNotifier() {
	notifier = beeep.Notify
}
