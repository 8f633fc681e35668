//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts a crop, save or copy notification to macOS Notification
// Center, with the application name as subtitle. Notification Center
// scripting cannot attach an image, so the crop thumbnail in opts.IconPath
// is not shown and the display time is left to the system.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.appName())
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript notification: %w", err)
	}
	return nil
}
