//go:build !linux && !darwin && !windows

package platform

import "testing"

func TestNotifyIsSilentWithoutNotificationService(t *testing.T) {
	if err := Notify("ShineyCrop", "Cropped 10x10", Options{IconPath: "/tmp/crop.png"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
}
