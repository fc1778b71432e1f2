package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SoftwareRevision is the parsed software revision characteristic. The
// device reports three versions joined with semicolons:
// application;BLE stack;bootloader.
type SoftwareRevision struct {
	Application string
	BLEStack    string
	Bootloader  string
}

// ParseSoftwareRevision splits the raw revision string. Missing fields
// are left empty; the device always sends at least the application
// version.
func ParseSoftwareRevision(raw string) SoftwareRevision {
	parts := strings.Split(raw, ";")
	rev := SoftwareRevision{Application: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		rev.BLEStack = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		rev.Bootloader = strings.TrimSpace(parts[2])
	}
	return rev
}

// String reassembles the semicolon-joined form.
func (r SoftwareRevision) String() string {
	return fmt.Sprintf("%s;%s;%s", r.Application, r.BLEStack, r.Bootloader)
}

// externalControlMinMajor/Minor is the first application version whose
// firmware implements the force control characteristic.
const (
	externalControlMinMajor = 1
	externalControlMinMinor = 14
)

// SupportsExternalControl reports whether the application version is
// recent enough for force (external) control. Unparseable versions
// report false.
func (r SoftwareRevision) SupportsExternalControl() bool {
	major, minor, ok := parseAppVersion(r.Application)
	if !ok {
		return false
	}
	if major != externalControlMinMajor {
		return major > externalControlMinMajor
	}
	return minor >= externalControlMinMinor
}

// parseAppVersion extracts major.minor from an application version
// string like "1.14" or "v1.14.2".
func parseAppVersion(s string) (major, minor int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
