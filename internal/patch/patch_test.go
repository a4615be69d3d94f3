package patch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorFixture = `dependencies {
    implementation("com.facebook.react:react-android")
    implementation("com.facebook.react:hermes-android")
}
`

const bootstrapFixture = `class MainApplication : Application(), ReactApplication {
  override val reactNativeHost: ReactNativeHost =
      object : DefaultReactNativeHost(this) {
        override fun getPackages(): List<ReactPackage> =
            PackageList(this).packages.apply {
              // add(MyReactNativePackage())
            }
      }
}
`

func TestDependencies_InsertsDirectlyAfterAnchor(t *testing.T) {
	patched, outcome, err := Dependencies(descriptorFixture)
	require.NoError(t, err)
	require.Equal(t, Applied, outcome)

	lines := strings.Split(patched, "\n")
	anchorIdx := -1
	for i, line := range lines {
		if strings.Contains(line, DependencyAnchor) {
			anchorIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, anchorIdx, 0, "anchor line must survive the patch")

	want := []string{
		`    implementation("androidx.credentials:credentials:1.2.2")`,
		`    implementation("androidx.credentials:credentials-play-services-auth:1.2.2")`,
		`    implementation("com.google.android.libraries.identity.googleid:googleid:1.1.0")`,
	}
	require.Greater(t, len(lines), anchorIdx+3)
	assert.Equal(t, want, lines[anchorIdx+1:anchorIdx+4],
		"three coordinate lines must follow the anchor, with the anchor's indentation")

	// The hermes line is untouched and still follows the inserted block.
	assert.Contains(t, lines[anchorIdx+4], "hermes-android")
}

func TestDependencies_Idempotent(t *testing.T) {
	once, outcome, err := Dependencies(descriptorFixture)
	require.NoError(t, err)
	require.Equal(t, Applied, outcome)

	twice, outcome, err := Dependencies(once)
	require.NoError(t, err)
	assert.Equal(t, AlreadyApplied, outcome)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second application changed the text (-once +twice):\n%s", diff)
	}
}

func TestDependencies_MissingAnchorIsFatal(t *testing.T) {
	text := "dependencies {\n    implementation(\"something.else:entirely\")\n}\n"
	patched, outcome, err := Dependencies(text)

	require.ErrorIs(t, err, ErrAnchorNotFound)
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, text, patched, "text must come back unchanged on structural mismatch")
}

func TestRegistration_InsertsInsideBuilderBlock(t *testing.T) {
	patched, outcome := Registration(bootstrapFixture)
	require.Equal(t, Applied, outcome)

	lines := strings.Split(patched, "\n")
	blockIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "PackageList(this).packages.apply {") {
			blockIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, blockIdx, 0)
	require.Greater(t, len(lines), blockIdx+1)
	assert.Equal(t, strings.Repeat(" ", 14)+RegistrationStatement, lines[blockIdx+1],
		"registration statement must be the first line inside the block")
}

func TestRegistration_Idempotent(t *testing.T) {
	once, outcome := Registration(bootstrapFixture)
	require.Equal(t, Applied, outcome)

	twice, outcome := Registration(once)
	assert.Equal(t, AlreadyApplied, outcome)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second application changed the text (-once +twice):\n%s", diff)
	}
}

func TestRegistration_ManualRegistrationCountsAsApplied(t *testing.T) {
	manual := strings.Replace(bootstrapFixture,
		"// add(MyReactNativePackage())",
		"add(GoogleSignInPackage())", 1)

	patched, outcome := Registration(manual)
	assert.Equal(t, AlreadyApplied, outcome)
	assert.Equal(t, manual, patched)
}

func TestRegistration_UnrecognizedLayoutIsSkipped(t *testing.T) {
	// Java-style bootstrap, no Kotlin builder block.
	text := "public class MainApplication extends Application {\n" +
		"  List<ReactPackage> packages = new PackageList(this).getPackages();\n" +
		"}\n"

	patched, outcome := Registration(text)
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, text, patched, "unrecognized layouts must be left untouched")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "already-applied", AlreadyApplied.String())
	assert.Equal(t, "skipped", Skipped.String())
}
