// Package version provides scenario format version parsing and compatibility checks.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the scenario format version understood by this module.
const Current = "1.0"

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) FormatVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v FormatVersion) Compatible(other FormatVersion) bool {
	return v.Major == other.Major
}

// Check reports whether a document declaring version s can be read by this
// module. An empty string means the current version.
func Check(s string) error {
	if s == "" {
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	current := MustParse(Current)
	if !current.Compatible(v) {
		return fmt.Errorf("unsupported format version %s (supported: %d.x)", v, current.Major)
	}
	if v.Minor > current.Minor {
		return fmt.Errorf("format version %s is newer than %s", v, current)
	}
	return nil
}
