package godeck

import "fmt"

// Version information for the GoDeck library.
const (
	VersionMajor = 0
	VersionMinor = 3
	VersionPatch = 1
)

// Version is the full version string of the GoDeck library.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// appVersion returns the docProps AppVersion value, which Office expects as "MM.mmmm".
func appVersion() string {
	return fmt.Sprintf("%02d.%04d", VersionMajor, VersionMinor)
}
