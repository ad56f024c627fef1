// Package buildinfo reports the version of the vergen binary itself.
package buildinfo

import "runtime/debug"

// buildVersion can be overridden at build time via:
//
//	go build -ldflags "-X go.inout.gg/vergen/internal/buildinfo.buildVersion=v1.2.3"
//
//nolint:gochecknoglobals
var buildVersion string

// Devel is reported when no version information is available.
const Devel = "devel"

// Version returns the vergen version. It prefers the value set via -ldflags,
// falls back to the Go module version from build info, and defaults to Devel.
func Version() string {
	if buildVersion != "" {
		return buildVersion
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	return Devel
}

// Revision returns the VCS revision the binary was built from, as recorded
// by the Go toolchain, or "" when it was not recorded.
func Revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var revision string

	modified := false

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision != "" && modified {
		revision += "-dirty"
	}

	return revision
}
