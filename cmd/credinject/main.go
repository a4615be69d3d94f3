package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"credinject/cmd/credinject/ui"
	"credinject/internal/config"
	"credinject/internal/gen"
	"credinject/internal/pipeline"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	// Global flags
	verbose        bool
	androidPackage string
	dryRun         bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "credinject",
	Short: "credinject - Google Sign-In native module injector for React Native Android projects",
	Long: `credinject is a build-preparation tool. It injects a Credential
Manager-based Google Sign-In native module into an existing React Native
Android project tree:

  1. Inserts the androidx.credentials / googleid dependency coordinates
     into android/app/build.gradle
  2. Generates GoogleSignInModule.kt and GoogleSignInPackage.kt under the
     application's package directory
  3. Registers the generated package in MainApplication.kt

Every step is idempotent: re-running against an already-injected project
changes nothing and reports already-applied per step.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// injectCmd runs the mutation pipeline against a project tree
var injectCmd = &cobra.Command{
	Use:   "inject [project-root]",
	Short: "Inject the sign-in module into a project tree",
	Long: `Runs the full mutation pipeline against the given project root
(default: current directory).

The Android package identifier is resolved in order from --package, the
CREDINJECT_ANDROID_PACKAGE environment variable, the android.package field
of credinject.yaml in the project root, and finally a built-in default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInject,
}

// previewCmd is inject without side effects
var previewCmd = &cobra.Command{
	Use:   "preview [project-root]",
	Short: "Show what inject would change, without writing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun = true
		return runInject(cmd, args)
	},
}

// resolveCmd prints the resolved target paths for debugging
var resolveCmd = &cobra.Command{
	Use:   "resolve [project-root]",
	Short: "Print the resolved target file paths for a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the credinject version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("credinject", Version)
	},
}

func projectRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

func runInject(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	runner := pipeline.New(logger, dryRun)
	report, err := runner.Run(root, config.Options{AndroidPackage: androidPackage})
	if report != nil {
		fmt.Print(ui.RenderReport(report))
	}
	if err != nil {
		return fmt.Errorf("injection failed: %w", err)
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	proj, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	pkg := config.ResolvePackage(config.Options{AndroidPackage: androidPackage}, proj)
	targets := gen.ResolveTargets(root, pkg)
	fmt.Println("package:   ", pkg)
	fmt.Println("descriptor:", targets.Descriptor)
	fmt.Println("bootstrap: ", targets.Bootstrap)
	fmt.Println("module dir:", targets.ModuleDir)
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&androidPackage, "package", "p", "", "Android package identifier (default: resolved from project)")

	injectCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute mutations and show diffs without writing")

	// Add commands to root
	rootCmd.AddCommand(injectCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
