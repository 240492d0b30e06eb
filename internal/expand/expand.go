// Package expand resolves and classifies user-supplied paths and flattens
// directories and playlist files into ordered track-path lists.
package expand

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/code-bunny/aural-player/internal/domain"
)

// PathKind is the classification of one resolved input path.
type PathKind int

const (
	KindNotFound PathKind = iota
	KindTrack
	KindPlaylist
	KindDirectory
	KindUnsupported
)

// DefaultAudioExtensions lists the file extensions treated as audio tracks.
var DefaultAudioExtensions = []string{".mp3", ".m4a", ".aac", ".flac", ".wav", ".ogg", ".aiff", ".aif", ".opus"}

// DefaultPlaylistExtensions lists the extensions treated as playlist files.
var DefaultPlaylistExtensions = []string{".m3u", ".m3u8"}

// Pipeline classifies paths and expands containers. It performs I/O
// existence checks only; nothing here touches the playlist store.
type Pipeline struct {
	codec        domain.PlaylistCodec
	audioExts    map[string]bool
	playlistExts map[string]bool
	logger       *slog.Logger
}

// NewPipeline creates a pipeline using the given playlist codec. Empty
// extension lists fall back to the defaults.
func NewPipeline(codec domain.PlaylistCodec, audioExts, playlistExts []string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if len(audioExts) == 0 {
		audioExts = DefaultAudioExtensions
	}
	if len(playlistExts) == 0 {
		playlistExts = DefaultPlaylistExtensions
	}
	return &Pipeline{
		codec:        codec,
		audioExts:    extSet(audioExts),
		playlistExts: extSet(playlistExts),
		logger:       logger,
	}
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}

// Resolve normalizes a path to its absolute form with symlinks followed.
// Every input passes through here exactly once, before classification.
func (p *Pipeline) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, domain.ErrFileNotFound
		}
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// Classify determines what a resolved path is. It never retries.
func (p *Pipeline) Classify(resolved string) PathKind {
	info, err := os.Stat(resolved)
	if err != nil {
		return KindNotFound
	}
	if info.IsDir() {
		return KindDirectory
	}
	ext := strings.ToLower(filepath.Ext(resolved))
	switch {
	case p.audioExts[ext]:
		return KindTrack
	case p.playlistExts[ext]:
		return KindPlaylist
	default:
		return KindUnsupported
	}
}

// ExpandDirectory walks a directory depth-first and returns the resolved
// paths of every supported audio or playlist file under it, fully
// flattened. Unsupported files are silently skipped. Entries are visited in
// name order for deterministic output.
func (p *Pipeline) ExpandDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []string
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			nested, err := p.ExpandDirectory(child)
			if err != nil {
				p.logger.Warn("skipping unreadable directory", "path", child, "error", err)
				continue
			}
			out = append(out, nested...)
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if p.audioExts[ext] || p.playlistExts[ext] {
			out = append(out, child)
		}
	}
	return out, nil
}

// ExpandPlaylistFile parses a playlist file into its ordered track paths.
func (p *Pipeline) ExpandPlaylistFile(path string) ([]string, error) {
	paths, err := p.codec.Load(path)
	if err != nil {
		return nil, err
	}
	return paths, nil
}
