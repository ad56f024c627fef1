package template

import (
	"text/template"

	"go.inout.gg/foundations/must"

	_ "embed"
)

var (
	//go:embed version.go.tmpl
	versionFileTemplate string

	//nolint:gochecknoglobals
	VersionFileTemplate *template.Template
)

// Constant is a single string constant of the version file.
type Constant struct {
	Name  string
	Doc   string
	Value string
}

// VersionFile is the data VersionFileTemplate is executed with.
type VersionFile struct {
	Package     string
	ToolVersion string
	Constants   []Constant
}

//nolint:gochecknoinits
func init() {
	VersionFileTemplate = must.Must(
		template.New("vergen: Version File Template").Parse(versionFileTemplate),
	)
}
