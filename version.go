// Package pbasic is a collection of concurrent containers. The containers
// live in subpackages; this package only describes the distribution.
package pbasic

import "strconv"

const (
	Major = 0
	Minor = 1
	Patch = 0

	Version = "0.1.0"
)

// VersionString builds the version from its components.
func VersionString() string {
	return strconv.Itoa(Major) + "." + strconv.Itoa(Minor) + "." + strconv.Itoa(Patch)
}
