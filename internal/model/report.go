package model

// CheckStatus classifies the outcome of verifying one module.
type CheckStatus string

const (
	// StatusPassed means every discovered test is exposed.
	StatusPassed CheckStatus = "passed"

	// StatusUnexposed means at least one discovered test is missing from the
	// module's export surface.
	StatusUnexposed CheckStatus = "unexposed"

	// StatusFailed means the module could not be verified at all (unreadable
	// file, missing declaration, malformed header).
	StatusFailed CheckStatus = "failed"
)

// CheckReport is the per-module result of an export-surface check.
type CheckReport struct {
	Module   string      `yaml:"module"`
	Path     Path        `yaml:"path"`
	Status   CheckStatus `yaml:"status"`
	Accepted []string    `yaml:"accepted,omitempty"`
	Missing  []string    `yaml:"missing,omitempty"`
	Reason   string      `yaml:"reason,omitempty"`
}

// RunSummary aggregates the reports of one run.
type RunSummary struct {
	Modules   int
	Passed    int
	Unexposed int
	Failed    int

	// Tests counts accepted test functions across all modules; MissingTests
	// counts discovered-but-unexposed ones.
	Tests        int
	MissingTests int
}
