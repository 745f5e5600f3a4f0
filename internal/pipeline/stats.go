package pipeline

import (
	"github.com/backmassage/opuspack/internal/probe"
)

// ConversionResult is the outcome of converting one AudioFile.
type ConversionResult struct {
	Input      AudioFile
	OutputPath string
	Success    bool
	InputSize  int64
	OutputSize int64             // Zero unless Success.
	Oversize   bool              // Output larger than the player accepts.
	Header     *probe.OpusHeader // Nil if the output could not be inspected.
	Err        error             // Nil on success.
}

// RunSummary tracks aggregate counters and byte totals across a batch run.
// Only successful conversions contribute to the byte totals.
type RunSummary struct {
	Found            int
	Succeeded        int
	Failed           int
	Oversize         int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// Add folds one result into the summary.
func (s *RunSummary) Add(r ConversionResult) {
	if !r.Success {
		s.Failed++
		return
	}
	s.Succeeded++
	s.TotalInputBytes += r.InputSize
	s.TotalOutputBytes += r.OutputSize
	if r.Oversize {
		s.Oversize++
	}
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunSummary) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// CompressionRatio returns the percentage by which the successful outputs
// are smaller than their inputs, (1 - out/in) * 100. ok is false when there
// is nothing to compare (no successes, or zero input bytes).
func (s *RunSummary) CompressionRatio() (pct float64, ok bool) {
	if s.Succeeded == 0 || s.TotalInputBytes <= 0 {
		return 0, false
	}
	return (1 - float64(s.TotalOutputBytes)/float64(s.TotalInputBytes)) * 100, true
}
