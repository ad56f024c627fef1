package vergen

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix envconfig tries first. Each variable falls back to
// its unprefixed name, so VERGEN_TARGET wins over TARGET.
const EnvPrefix = "VERGEN"

// Env is the build environment facts are derived from.
type Env struct {
	// PkgVersion is the declared package version used as the semver fallback.
	PkgVersion string `envconfig:"PKG_VERSION" validate:"omitempty,pkgversion"`

	// Target is the target triple as reported by the build environment.
	Target string `envconfig:"TARGET" validate:"omitempty,printascii"`

	// GOOS and GOARCH make up the target triple when Target is not set.
	GOOS   string `envconfig:"GOOS" validate:"omitempty,alphanum"`
	GOARCH string `envconfig:"GOARCH" validate:"omitempty,alphanum"`

	// OutDir is where the legacy version file is written.
	OutDir string `envconfig:"OUT_DIR"`

	// GoPackage is the package of the file that invoked go generate.
	GoPackage string `envconfig:"GOPACKAGE"`
}

// LoadEnv reads Env from the process environment and validates it.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return env, fmt.Errorf("vergen: failed to process environment: %w", err)
	}

	if err := env.Validate(); err != nil {
		return env, err
	}

	return env, nil
}

// Validate checks the fields of e.
//
// PkgVersion must be a semantic version, optionally prefixed with "v".
func (e Env) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("pkgversion", func(fl validator.FieldLevel) bool {
		v := strings.TrimPrefix(fl.Field().String(), "v")
		return validate.Var(v, "semver") == nil
	}); err != nil {
		return fmt.Errorf("vergen: failed to register validation: %w", err)
	}

	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("vergen: invalid environment: %w", err)
	}

	return nil
}

// Triple returns Target, or "<GOARCH>-<GOOS>" when Target is empty.
// Missing GOOS/GOARCH default to the values of the running toolchain.
func (e Env) Triple() string {
	if e.Target != "" {
		return e.Target
	}

	goos, goarch := e.GOOS, e.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}

	if goarch == "" {
		goarch = runtime.GOARCH
	}

	return goarch + "-" + goos
}

// Semver returns PkgVersion prefixed with "v", or "" when it is not set.
func (e Env) Semver() string { return prefixVersion(e.PkgVersion) }

func prefixVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}

	return "v" + v
}
