package pipeline

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeOK                Outcome = iota // Every file converted.
	OutcomeFailures                         // At least one file failed; the rest were attempted.
	OutcomeNoInput                          // No recognized files in the input directory.
	OutcomeMissingDependency                // ffmpeg missing or unusable; no file touched.
	OutcomeInterrupted                      // Cancelled by SIGINT/SIGTERM.
	OutcomeFault                            // Unexpected error (filesystem, paths).
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFailures:
		return "failures"
	case OutcomeNoInput:
		return "no input"
	case OutcomeMissingDependency:
		return "missing dependency"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to the process exit status: 0 only for a fully
// successful run.
func (o Outcome) ExitCode() int {
	if o == OutcomeOK {
		return 0
	}
	return 1
}

// Result is what Run hands back to the entry point.
type Result struct {
	Outcome Outcome
	Summary RunSummary
	Results []ConversionResult
	Err     error // Set for OutcomeMissingDependency, OutcomeInterrupted and OutcomeFault.
}
