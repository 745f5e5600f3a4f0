package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/opuspack/internal/naming"
)

// AudioFile is one recognized input file as found in the input directory.
type AudioFile struct {
	Path string // Input directory joined with Name.
	Name string // Base name, e.g. "Song.mp3".
	Stem string // Name without extension, e.g. "Song".
	Ext  string // Extension as found, e.g. ".MP3".
	Size int64
}

// Discover lists the regular files directly inside dir whose extension is
// in exts (compared case-insensitively) and returns them sorted by name for
// deterministic processing order. Subdirectories are not descended into.
// A missing dir yields an empty result and no error.
func Discover(dir string, exts []string) ([]AudioFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	recognized := make(map[string]bool, len(exts))
	for _, e := range exts {
		recognized[strings.ToLower(e)] = true
	}

	var files []AudioFile
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !recognized[strings.ToLower(ext)] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks, so a link to a regular file counts.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, AudioFile{
			Path: path,
			Name: e.Name(),
			Stem: naming.Stem(e.Name()),
			Ext:  ext,
			Size: fi.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
