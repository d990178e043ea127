package protocol

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Version is the wire protocol version announced in hello messages.
const Version = "v1.0.0"

// CheckVersion reports whether a peer's announced version is compatible.
// Versions are compatible when their semver major components match.
func CheckVersion(remote string) error {
	if !semver.IsValid(remote) {
		return fmt.Errorf("peer version %q is not a valid semantic version", remote)
	}
	if semver.Major(remote) != semver.Major(Version) {
		return fmt.Errorf("peer protocol %s is incompatible with %s", remote, Version)
	}
	return nil
}
