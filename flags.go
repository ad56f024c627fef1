package vergen

import (
	"fmt"
	"strings"
)

// Flags selects which facts are derived and how.
//
// Flags is a value type: Toggle returns a new set and never mutates the
// receiver.
type Flags uint16

const (
	BuildTimestamp      Flags = 1 << iota // BUILD_TIMESTAMP
	BuildDate                             // BUILD_DATE
	SHA                                   // SHA
	SHAShort                              // SHA_SHORT
	CommitDate                            // COMMIT_DATE
	TargetTriple                          // TARGET_TRIPLE
	Semver                                // SEMVER
	SemverLightweight                     // SEMVER_LIGHTWEIGHT
	SemverFromPkg                         // SEMVER_FROM_CARGO_PKG
	RebuildOnHeadChange                   // REBUILD_ON_HEAD_CHANGE
)

const (
	// NoFlags is the baseline with every option disabled.
	NoFlags Flags = 0

	// AllFlags enables every option, including SemverFromPkg.
	AllFlags = BuildTimestamp | BuildDate | SHA | SHAShort | CommitDate |
		TargetTriple | Semver | SemverLightweight | SemverFromPkg | RebuildOnHeadChange
)

//nolint:gochecknoglobals
var flagNames = []struct {
	flag Flags
	name string
}{
	{BuildTimestamp, "BUILD_TIMESTAMP"},
	{BuildDate, "BUILD_DATE"},
	{SHA, "SHA"},
	{SHAShort, "SHA_SHORT"},
	{CommitDate, "COMMIT_DATE"},
	{TargetTriple, "TARGET_TRIPLE"},
	{Semver, "SEMVER"},
	{SemverLightweight, "SEMVER_LIGHTWEIGHT"},
	{SemverFromPkg, "SEMVER_FROM_CARGO_PKG"},
	{RebuildOnHeadChange, "REBUILD_ON_HEAD_CHANGE"},
}

// Toggle flips every bit of other in f.
func (f Flags) Toggle(other Flags) Flags { return f ^ other }

// Contains reports whether every bit of other is set in f.
func (f Flags) Contains(other Flags) bool { return f&other == other }

// Intersects reports whether any bit of other is set in f.
func (f Flags) Intersects(other Flags) bool { return f&other != 0 }

// String renders the set as a "|"-separated list in declaration order.
func (f Flags) String() string {
	if f == NoFlags {
		return "NONE"
	}

	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Contains(fn.flag) {
			names = append(names, fn.name)
		}
	}

	return strings.Join(names, "|")
}

// ParseFlag maps a flag name to its value. Names are case-insensitive and
// accept either "_" or "-" as the word separator, so "SHA_SHORT" and
// "sha-short" are equivalent. "SEMVER_FROM_PKG" is accepted as an alias of
// "SEMVER_FROM_CARGO_PKG".
func ParseFlag(name string) (Flags, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	if normalized == "SEMVER_FROM_PKG" {
		return SemverFromPkg, nil
	}

	for _, fn := range flagNames {
		if fn.name == normalized {
			return fn.flag, nil
		}
	}

	return NoFlags, fmt.Errorf("vergen: unknown flag %q", name)
}
