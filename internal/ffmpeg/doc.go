// Package ffmpeg builds and executes the fixed Opus encode command.
//
// The command line is produced by [Build] from a [config.Profile]; nothing
// about it is configurable per file. Processes are started through the
// [Runner] interface so tests can stand in for ffmpeg. Success is exit
// status 0 and nothing else: ffmpeg's output streams are discarded (or
// tee'd to the terminal in verbose mode), never parsed.
package ffmpeg
