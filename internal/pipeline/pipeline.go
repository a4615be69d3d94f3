// Package pipeline orchestrates the project mutations in a fixed order:
// dependency patch, source generation, registration patch. Dependency
// declarations must exist before the generated source can compile, and the
// generated type must exist before registering it is meaningful, so no
// step is skipped or reordered.
//
// Every step is safely re-runnable: the patchers converge on marker
// presence and the generated files are overwritten wholesale, never
// merged. A dependency-patch structural mismatch aborts the run; a
// registration-patch mismatch degrades to a warning because some bootstrap
// layouts require manual integration.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"credinject/internal/config"
	"credinject/internal/gen"
	"credinject/internal/patch"
)

// writeFunc is the filesystem write side effect threaded through the
// pipeline; tests substitute a failing one.
type writeFunc func(path string, data []byte, perm os.FileMode) error

// Runner executes the mutation pipeline against one project tree.
type Runner struct {
	logger *zap.Logger
	dryRun bool
	write  writeFunc
}

// New builds a Runner. A nil logger is replaced with a no-op logger. When
// dryRun is set, mutations are computed in memory and reported as diffs
// instead of being written.
func New(logger *zap.Logger, dryRun bool) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger.Named("pipeline"), dryRun: dryRun, write: os.WriteFile}
}

// Run executes the pipeline once, to completion or first fatal error. The
// returned report is always non-nil and carries per-step statuses even
// when an error is returned.
func (r *Runner) Run(root string, opts config.Options) (*Report, error) {
	proj, err := config.LoadProject(root)
	if err != nil {
		return &Report{RunID: uuid.NewString()}, err
	}
	if err := proj.Validate(); err != nil {
		return &Report{RunID: uuid.NewString()}, err
	}

	pkg := config.ResolvePackage(opts, proj)
	targets := gen.ResolveTargets(root, pkg)
	report := &Report{
		RunID:   uuid.NewString(),
		Package: pkg,
		DryRun:  r.dryRun,
	}

	log := r.logger.With(
		zap.String("run_id", report.RunID),
		zap.String("package", pkg),
		zap.Bool("dry_run", r.dryRun),
	)
	log.Info("starting mutation pipeline", zap.String("root", root))

	if err := r.patchDependencies(log, targets, report); err != nil {
		return report, err
	}
	if err := r.generateSources(log, pkg, targets, report); err != nil {
		return report, err
	}
	if err := r.patchRegistration(log, targets, report); err != nil {
		return report, err
	}

	log.Info("pipeline finished", zap.Int("steps", len(report.Steps)))
	return report, nil
}

// patchDependencies is the only fatal patch: without the dependency
// coordinates the later build cannot compile the generated sources.
func (r *Runner) patchDependencies(log *zap.Logger, targets gen.Targets, report *Report) error {
	text, err := os.ReadFile(targets.Descriptor)
	if err != nil {
		report.add(StepDependencies, StatusFailed, targets.Descriptor, err.Error(), "")
		return fmt.Errorf("failed to read build descriptor: %w", err)
	}

	patched, outcome, err := patch.Dependencies(string(text))
	if err != nil {
		report.add(StepDependencies, StatusFailed, targets.Descriptor, err.Error(), "")
		if errors.Is(err, patch.ErrAnchorNotFound) {
			return fmt.Errorf("build descriptor %s is not in a recognized shape: %w", targets.Descriptor, err)
		}
		return err
	}

	switch outcome {
	case patch.AlreadyApplied:
		log.Info("dependency block already present", zap.String("path", targets.Descriptor))
		report.add(StepDependencies, StatusAlreadyApplied, targets.Descriptor, "", "")
	case patch.Applied:
		if err := r.writeFile(targets.Descriptor, patched); err != nil {
			report.add(StepDependencies, StatusFailed, targets.Descriptor, err.Error(), "")
			return err
		}
		log.Info("dependency block inserted", zap.String("path", targets.Descriptor))
		report.add(StepDependencies, StatusApplied, targets.Descriptor, "", r.preview(string(text), patched))
	}
	return nil
}

// generateSources regenerates both Kotlin files from scratch on every run.
// They are replaced outright, never diffed or merged; an unchanged file is
// reported as already-applied so callers can tell this run did nothing.
func (r *Runner) generateSources(log *zap.Logger, pkg string, targets gen.Targets, report *Report) error {
	files := []struct {
		name    string
		content string
	}{
		{gen.ModuleFileName, gen.ModuleSource(pkg)},
		{gen.PackageFileName, gen.PackageSource(pkg)},
	}

	if !r.dryRun {
		if err := os.MkdirAll(targets.ModuleDir, 0o755); err != nil {
			report.add(StepGenerate, StatusFailed, targets.ModuleDir, err.Error(), "")
			return fmt.Errorf("failed to create module directory: %w", err)
		}
	}

	for _, f := range files {
		path := filepath.Join(targets.ModuleDir, f.name)
		existing, _ := os.ReadFile(path)
		if string(existing) == f.content {
			// Regeneration is deterministic, so identical bytes mean the
			// replacement would be a no-op.
			report.add(StepGenerate, StatusAlreadyApplied, path, "", "")
			continue
		}
		if err := r.writeFile(path, f.content); err != nil {
			report.add(StepGenerate, StatusFailed, path, err.Error(), "")
			return err
		}
		log.Info("generated source written", zap.String("path", path))
		report.add(StepGenerate, StatusApplied, path, "", r.preview(string(existing), f.content))
	}
	return nil
}

// patchRegistration degrades structural mismatches to a warning: an
// unrecognized or unreadable bootstrap layout is reported as skipped with
// a manual-integration hint. A failed write is a real filesystem error,
// though, and aborts the run like any other.
func (r *Runner) patchRegistration(log *zap.Logger, targets gen.Targets, report *Report) error {
	text, err := os.ReadFile(targets.Bootstrap)
	if err != nil {
		log.Warn("bootstrap file not readable, register the package manually",
			zap.String("path", targets.Bootstrap), zap.Error(err))
		report.add(StepRegistration, StatusSkipped, targets.Bootstrap,
			"bootstrap file not readable; add "+patch.RegistrationStatement+" manually", "")
		return nil
	}

	patched, outcome := patch.Registration(string(text))
	switch outcome {
	case patch.AlreadyApplied:
		log.Info("registration already present", zap.String("path", targets.Bootstrap))
		report.add(StepRegistration, StatusAlreadyApplied, targets.Bootstrap, "", "")
	case patch.Skipped:
		log.Warn("package-list block not recognized, register the package manually",
			zap.String("path", targets.Bootstrap))
		report.add(StepRegistration, StatusSkipped, targets.Bootstrap,
			"package-list block not recognized; add "+patch.RegistrationStatement+" manually", "")
	case patch.Applied:
		if err := r.writeFile(targets.Bootstrap, patched); err != nil {
			report.add(StepRegistration, StatusFailed, targets.Bootstrap, err.Error(), "")
			return err
		}
		log.Info("registration inserted", zap.String("path", targets.Bootstrap))
		report.add(StepRegistration, StatusApplied, targets.Bootstrap, "", r.preview(string(text), patched))
	}
	return nil
}

func (r *Runner) writeFile(path, content string) error {
	if r.dryRun {
		return nil
	}
	if err := r.write(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// preview renders a diff for dry runs only; real runs keep reports small.
func (r *Runner) preview(oldText, newText string) string {
	if !r.dryRun {
		return ""
	}
	return renderDiff(oldText, newText)
}
