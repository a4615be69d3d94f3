// Package config holds the project descriptor and invocation options for
// credinject. The only decision it owns is which Android package
// identifier the pipeline uses, resolved through a fixed fallback chain:
// explicit option, then environment, then project descriptor, then a
// hard-coded default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DescriptorName is the optional per-project descriptor read from the
// project root.
const DescriptorName = "credinject.yaml"

// DefaultAndroidPackage is the last-resort package identifier when neither
// the caller nor the project supplies one.
const DefaultAndroidPackage = "com.credinject.app"

// envAndroidPackage overrides the descriptor's package identifier. An
// explicit Options value still wins over it.
const envAndroidPackage = "CREDINJECT_ANDROID_PACKAGE"

// Options is the recognized invocation configuration. One option is
// recognized today; unknown concerns stay with the orchestrator.
type Options struct {
	AndroidPackage string
}

// Project is the on-disk project descriptor.
type Project struct {
	Name     string        `yaml:"name"`
	Platform string        `yaml:"platform"`
	Android  AndroidConfig `yaml:"android"`
}

// AndroidConfig carries the ambient Android settings owned by the project.
type AndroidConfig struct {
	Package string `yaml:"package"`
}

// DefaultProject returns the descriptor used when none exists on disk.
func DefaultProject() *Project {
	return &Project{
		Platform: "android",
	}
}

// LoadProject reads the project descriptor from root, falling back to
// defaults when the file is absent. Environment overrides are applied
// after parsing, so the environment wins over the file.
func LoadProject(root string) (*Project, error) {
	p := DefaultProject()

	path := filepath.Join(root, DescriptorName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No descriptor is a supported layout.
	case err != nil:
		return nil, fmt.Errorf("failed to read project descriptor: %w", err)
	default:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", DescriptorName, err)
		}
	}

	p.applyEnvOverrides()
	return p, nil
}

func (p *Project) applyEnvOverrides() {
	if v := os.Getenv(envAndroidPackage); v != "" {
		p.Android.Package = v
	}
}

// Validate checks that the descriptor targets a platform this pipeline is
// built for. Target selection is a configuration-time decision; there is
// no per-step platform branching anywhere downstream.
func (p *Project) Validate() error {
	if p.Platform != "" && p.Platform != "android" {
		return fmt.Errorf("unsupported platform %q: this pipeline only targets android", p.Platform)
	}
	return nil
}

// ResolvePackage returns the package identifier the pipeline will use,
// walking the fallback chain. The built-in default guarantees a non-empty
// result. Segment syntax is deliberately not validated: the identifier
// passes into the generated sources verbatim, and hygiene belongs to
// whatever scaffolded the applicationId.
func ResolvePackage(opts Options, proj *Project) string {
	for _, candidate := range []string{opts.AndroidPackage, proj.Android.Package} {
		if pkg := strings.TrimSpace(candidate); pkg != "" {
			return pkg
		}
	}
	return DefaultAndroidPackage
}
