// Package patch applies the two idempotent text mutations credinject makes
// to host project files: dependency coordinates in the Gradle build
// descriptor and the package registration line in the application
// bootstrap. Marker presence is the sole idempotency signal; applying
// either patch twice yields the same text as applying it once.
//
// Detection is plain substring/regexp matching over the file text. The
// target files have a known, narrow shape, so a structural parser would
// buy little here; the anchor/marker contract is the interface either way.
package patch

import (
	"errors"
	"regexp"
	"strings"
)

// ErrAnchorNotFound reports a build descriptor without the expected
// core-framework dependency line. The host file is assumed to have a known
// shape; a missing anchor means it is incompatible or was hand-edited, and
// the caller must surface that rather than silently doing nothing.
var ErrAnchorNotFound = errors.New("react-android dependency anchor not found in build descriptor")

// Outcome reports what a patch application did to the input text.
type Outcome int

const (
	// Applied means the mutation was performed on this call.
	Applied Outcome = iota
	// AlreadyApplied means the marker was present and the text is unchanged.
	AlreadyApplied
	// Skipped means the expected structure was absent and the text is unchanged.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already-applied"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// DependencyAnchor is the existing core-framework dependency line the new
// coordinates are inserted after.
const DependencyAnchor = `implementation("com.facebook.react:react-android")`

// dependencyMarker signals an already-patched descriptor. The googleid
// group is unique to the injected block, so its presence is sufficient.
const dependencyMarker = "com.google.android.libraries.identity.googleid"

// dependencyLines are the coordinates inserted verbatim after the anchor.
// Versions are deliberately pinned; the generated Kotlin compiles against
// exactly these artifacts.
var dependencyLines = []string{
	`implementation("androidx.credentials:credentials:1.2.2")`,
	`implementation("androidx.credentials:credentials-play-services-auth:1.2.2")`,
	`implementation("com.google.android.libraries.identity.googleid:googleid:1.1.0")`,
}

// RegistrationStatement is the single line inserted into the bootstrap's
// package-list builder block.
const RegistrationStatement = "add(GoogleSignInPackage())"

// registrationMarker signals an already-patched bootstrap. Any mention of
// the generated type counts, including a hand-written registration.
const registrationMarker = "GoogleSignInPackage"

// packageListPattern matches the opening line of the package-list builder
// block in a stock React Native Kotlin bootstrap.
var packageListPattern = regexp.MustCompile(`(?m)^([ \t]*)PackageList\(this\)\.packages\.apply\s*\{`)

// Dependencies inserts the sign-in dependency coordinates immediately
// after the anchor line, preserving the anchor's indentation. A missing
// anchor is fatal for the caller: the returned error is ErrAnchorNotFound
// and the text comes back unchanged.
func Dependencies(text string) (string, Outcome, error) {
	if strings.Contains(text, dependencyMarker) {
		return text, AlreadyApplied, nil
	}
	idx := strings.Index(text, DependencyAnchor)
	if idx < 0 {
		return text, Skipped, ErrAnchorNotFound
	}

	lineStart := strings.LastIndex(text[:idx], "\n") + 1
	indent := text[lineStart:idx]

	insertAt := len(text)
	if nl := strings.Index(text[idx:], "\n"); nl >= 0 {
		insertAt = idx + nl
	}

	var block strings.Builder
	for _, dep := range dependencyLines {
		block.WriteString("\n")
		block.WriteString(indent)
		block.WriteString(dep)
	}
	return text[:insertAt] + block.String() + text[insertAt:], Applied, nil
}

// Registration inserts the registration statement as the first line inside
// the package-list builder block. An unrecognized bootstrap layout is not
// an error: the text comes back unchanged with Skipped, and the caller
// degrades to a warning, since some layouts require manual integration.
func Registration(text string) (string, Outcome) {
	if strings.Contains(text, registrationMarker) {
		return text, AlreadyApplied
	}
	loc := packageListPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, Skipped
	}
	indent := text[loc[2]:loc[3]]
	insertAt := loc[1]
	return text[:insertAt] + "\n" + indent + "  " + RegistrationStatement + text[insertAt:], Applied
}
