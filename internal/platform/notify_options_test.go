package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if got := o.appName(); got != DefaultAppName {
		t.Fatalf("appName = %q", got)
	}
	if got := o.timeoutMillis(); got != 5000 {
		t.Fatalf("timeout = %d", got)
	}
	o = Options{AppName: "Cropper", Timeout: 1500 * time.Millisecond}
	if o.appName() != "Cropper" || o.timeoutMillis() != 1500 {
		t.Fatalf("explicit options ignored: %q %d", o.appName(), o.timeoutMillis())
	}
}
