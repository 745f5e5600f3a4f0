// Package pipeline orchestrates a conversion run: encoder gate, directory
// preparation, discovery, the sequential per-file conversion loop, and the
// batch summary.
//
// Files are processed one at a time in name order. A failed file is recorded
// and the loop moves on; a missing encoder, an empty input directory, an
// unexpected filesystem error or an interrupt end the run early. The caller
// gets a [Result] whose [Outcome] maps to the process exit status.
package pipeline
