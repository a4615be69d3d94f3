package pipeline

// Step identifies one stage of the mutation pipeline, in execution order.
type Step string

const (
	StepDependencies Step = "dependencies"
	StepGenerate     Step = "generate"
	StepRegistration Step = "registration"
)

// Status is the outcome of one step. Callers need to tell "nothing to do"
// apart from "this run performed the mutation", so a single aggregate
// success flag is not enough.
type Status string

const (
	StatusApplied        Status = "applied"
	StatusAlreadyApplied Status = "already-applied"
	StatusSkipped        Status = "skipped"
	StatusFailed         Status = "failed"
)

// StepResult records what one step did and where.
type StepResult struct {
	Step   Step
	Status Status
	Path   string
	Detail string
	Diff   string // unified preview of the pending mutation, dry runs only
}

// Report is the per-run outcome surfaced to the caller.
type Report struct {
	RunID   string
	Package string
	DryRun  bool
	Steps   []StepResult
}

func (r *Report) add(step Step, status Status, path, detail, diff string) {
	r.Steps = append(r.Steps, StepResult{
		Step:   step,
		Status: status,
		Path:   path,
		Detail: detail,
		Diff:   diff,
	})
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Mutated reports whether this run changed anything on disk.
func (r *Report) Mutated() bool {
	if r.DryRun {
		return false
	}
	for _, s := range r.Steps {
		if s.Status == StatusApplied {
			return true
		}
	}
	return false
}
