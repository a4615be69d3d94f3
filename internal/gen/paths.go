package gen

import (
	"path/filepath"
	"strings"
)

// File names and fixed relative locations inside a React Native Android
// project tree. The pipeline only ever touches these paths under the
// project root, never the rest of the tree.
const (
	ModuleFileName  = "GoogleSignInModule.kt"
	PackageFileName = "GoogleSignInPackage.kt"

	descriptorRel = "android/app/build.gradle"
	javaRootRel   = "android/app/src/main/java"
	bootstrapName = "MainApplication.kt"
	moduleSubdir  = "gsignin"
)

// Targets are the canonical locations of the three files the pipeline
// reads or writes, resolved for one project root and package identifier.
type Targets struct {
	Descriptor string // Gradle build descriptor to receive dependency lines
	Bootstrap  string // application bootstrap to receive the registration line
	ModuleDir  string // directory that receives the two generated sources
}

// PackagePath converts a dotted package identifier to a relative directory
// path, e.g. "com.example.app" -> "com/example/app".
func PackagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", string(filepath.Separator))
}

// ResolveTargets joins the fixed relative suffixes under root. It performs
// no filesystem access; callers detect absent files themselves.
func ResolveTargets(root, pkg string) Targets {
	javaDir := filepath.Join(root, filepath.FromSlash(javaRootRel), PackagePath(pkg))
	return Targets{
		Descriptor: filepath.Join(root, filepath.FromSlash(descriptorRel)),
		Bootstrap:  filepath.Join(javaDir, bootstrapName),
		ModuleDir:  filepath.Join(javaDir, moduleSubdir),
	}
}
