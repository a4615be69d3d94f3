package gen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackagePath(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("com/example/app"), PackagePath("com.example.app"))
	assert.Equal(t, "single", PackagePath("single"))
}

func TestResolveTargets(t *testing.T) {
	targets := ResolveTargets("/work/app", "com.example.app")

	javaDir := filepath.FromSlash("/work/app/android/app/src/main/java/com/example/app")
	assert.Equal(t, filepath.FromSlash("/work/app/android/app/build.gradle"), targets.Descriptor)
	assert.Equal(t, filepath.Join(javaDir, "MainApplication.kt"), targets.Bootstrap)
	assert.Equal(t, filepath.Join(javaDir, "gsignin"), targets.ModuleDir)
}

func TestResolveTargets_PureFunctionOfInputs(t *testing.T) {
	a := ResolveTargets("/nonexistent/root", "org.test")
	b := ResolveTargets("/nonexistent/root", "org.test")
	assert.Equal(t, a, b)
}
