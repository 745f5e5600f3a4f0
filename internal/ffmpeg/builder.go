package ffmpeg

import (
	"strconv"

	"github.com/backmassage/opuspack/internal/config"
)

// Build constructs the ffmpeg argument slice (without the program name) that
// encodes input to output with the given profile: Opus audio, forced channel
// count and sample rate, VBR at the chosen compression effort.
func Build(p config.Profile, input, output string) []string {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-loglevel", "error")

	// --- Input ---
	args = append(args, "-i", input)

	// --- Drop cover art and other video streams ---
	args = append(args, "-vn")

	// --- Audio codec ---
	args = append(args,
		"-c:a", p.Codec,
		"-b:a", p.Bitrate,
		"-ac", strconv.Itoa(p.Channels),
		"-ar", strconv.Itoa(p.SampleRate),
		"-vbr", p.VBR,
		"-compression_level", strconv.Itoa(p.CompressionLevel),
	)

	// --- Output ---
	if p.Overwrite {
		args = append(args, "-y")
	}
	args = append(args, output)

	return args
}

// VersionArgs returns the arguments for the trivial version query used by
// the dependency check.
func VersionArgs() []string {
	return []string{"-version"}
}
