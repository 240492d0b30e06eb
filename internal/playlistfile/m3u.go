// Package playlistfile implements the playlist-file codec for the M3U
// family. The core only ever sees ordered track paths; everything about
// the on-disk syntax stays in here.
package playlistfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/code-bunny/aural-player/internal/domain"
)

// M3UCodec reads and writes .m3u/.m3u8 files.
type M3UCodec struct{}

var _ domain.PlaylistCodec = (*M3UCodec)(nil)

// NewM3UCodec creates the codec.
func NewM3UCodec() *M3UCodec { return &M3UCodec{} }

// Load parses the playlist file into ordered track paths. Comment and
// directive lines are skipped; relative entries resolve against the
// playlist file's directory.
func (c *M3UCodec) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening playlist %s: %w", path, err)
	}
	defer f.Close()

	base := filepath.Dir(path)
	var paths []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading playlist %s: %w", path, err)
	}
	return paths, nil
}

// Save writes the tracks as an extended M3U file.
func (c *M3UCodec) Save(path string, tracks []*domain.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating playlist %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "#EXTM3U")
	for _, t := range tracks {
		secs := int(t.Duration.Seconds())
		if secs == 0 {
			secs = -1
		}
		label := t.DisplayName()
		if t.Artist != "" {
			label = t.Artist + " - " + label
		}
		fmt.Fprintf(w, "#EXTINF:%d,%s\n", secs, label)
		fmt.Fprintln(w, t.Path)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing playlist %s: %w", path, err)
	}
	return nil
}
