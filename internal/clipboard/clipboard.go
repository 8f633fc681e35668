// Package clipboard moves crop results to and source images from the system
// clipboard.
package clipboard

import "errors"

var (
	// ErrEmpty is returned when the clipboard holds no data of the requested kind.
	ErrEmpty = errors.New("clipboard is empty")
	// ErrUnsupported is returned on platforms without clipboard access.
	ErrUnsupported = errors.New("clipboard is not supported on this platform")
)
