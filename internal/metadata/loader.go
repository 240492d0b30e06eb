// Package metadata implements the track-loader capability: cheap tag
// reading at insertion time, slower duration estimation afterward.
package metadata

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/code-bunny/aural-player/internal/domain"
)

// Loader reads tags with dhowden/tag and estimates durations from the
// audio headers it understands.
type Loader struct {
	logger *slog.Logger
}

var _ domain.TrackLoader = (*Loader)(nil)

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadDisplayInfo fills title, artist, album and genre from the file's
// tags. A file without tags is still a valid track (the filename stem
// serves as display name); a file that cannot be opened is not.
func (l *Loader) LoadDisplayInfo(t *domain.Track) error {
	f, err := os.Open(t.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.Path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		t.FileSize = info.Size()
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged audio is fine; display falls back to the filename.
		l.logger.Debug("no readable tags", "path", t.Path, "error", err)
		return nil
	}
	t.Title = m.Title()
	t.Artist = m.Artist()
	t.Album = m.Album()
	t.Genre = m.Genre()
	return nil
}

// LoadDuration estimates the track duration. MP3 durations come from the
// first frame header's bitrate, WAV durations from the fmt chunk's byte
// rate; other formats stay at zero until a decoder is attached.
func (l *Loader) LoadDuration(t *domain.Track) error {
	f, err := os.Open(t.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.Path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(t.Path)) {
	case ".mp3":
		d, err := mp3Duration(f, t.FileSize)
		if err != nil {
			return err
		}
		t.Duration = d
	case ".wav":
		d, err := wavDuration(f, t.FileSize)
		if err != nil {
			return err
		}
		t.Duration = d
	default:
		l.logger.Debug("no duration estimator for format", "path", t.Path)
	}
	return nil
}

// mp3Bitrates maps MPEG1 Layer III bitrate indexes to kbit/s.
var mp3Bitrates = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}

// mp3Duration estimates duration assuming constant bitrate, using the
// first frame header found after any ID3v2 block.
func mp3Duration(r io.ReadSeeker, size int64) (time.Duration, error) {
	header := make([]byte, 10)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, fmt.Errorf("reading mp3 header: %w", err)
	}

	audioSize := size
	if string(header[:3]) == "ID3" {
		// Syncsafe 28-bit tag length.
		tagLen := int64(header[6]&0x7f)<<21 | int64(header[7]&0x7f)<<14 |
			int64(header[8]&0x7f)<<7 | int64(header[9]&0x7f)
		audioSize -= tagLen + 10
		if _, err := r.Seek(tagLen+10, io.SeekStart); err != nil {
			return 0, err
		}
	} else {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}
	}

	// Scan for the frame sync within a bounded window.
	buf := make([]byte, 4096)
	n, _ := io.ReadFull(r, buf)
	for i := 0; i+1 < n; i++ {
		if buf[i] == 0xff && buf[i+1]&0xe0 == 0xe0 {
			bitrate := mp3Bitrates[buf[i+2]>>4]
			if bitrate == 0 {
				continue
			}
			secs := float64(audioSize*8) / float64(bitrate*1000)
			return time.Duration(secs * float64(time.Second)), nil
		}
	}
	return 0, fmt.Errorf("no mp3 frame header found: %w", domain.ErrInvalidTrack)
}

// wavDuration reads the byte rate from the RIFF fmt chunk.
func wavDuration(r io.Reader, size int64) (time.Duration, error) {
	header := make([]byte, 36)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, fmt.Errorf("reading wav header: %w", err)
	}
	if string(header[:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return 0, fmt.Errorf("not a wav file: %w", domain.ErrInvalidTrack)
	}
	byteRate := binary.LittleEndian.Uint32(header[28:32])
	if byteRate == 0 {
		return 0, fmt.Errorf("wav byte rate is zero: %w", domain.ErrInvalidTrack)
	}
	secs := float64(size-44) / float64(byteRate)
	return time.Duration(secs * float64(time.Second)), nil
}
