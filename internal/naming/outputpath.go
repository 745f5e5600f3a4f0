package naming

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath builds the output file path for stem. ext includes the leading
// dot (e.g. ".ogg").
func OutputPath(outputDir, stem, ext string) string {
	return filepath.Join(outputDir, stem+ext)
}
