package playlistfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-bunny/aural-player/internal/domain"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestM3UCodec_LoadSkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "mix.m3u"), `#EXTM3U
#EXTINF:180,Artist - Song One
/music/one.mp3

# stray comment
/music/two.flac
`)

	codec := NewM3UCodec()
	paths, err := codec.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/music/one.mp3", "/music/two.flac"}, paths)
}

func TestM3UCodec_LoadResolvesRelativeEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "mix.m3u"), "one.mp3\nsub/two.mp3\n/abs/three.mp3\n")

	codec := NewM3UCodec()
	paths, err := codec.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "one.mp3"),
		filepath.Join(dir, "sub", "two.mp3"),
		"/abs/three.mp3",
	}, paths)
}

func TestM3UCodec_LoadMissingFile(t *testing.T) {
	codec := NewM3UCodec()
	_, err := codec.Load(filepath.Join(t.TempDir(), "nope.m3u"))
	assert.Error(t, err)
}

func TestM3UCodec_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.m3u")

	tracks := []*domain.Track{
		{Path: "/music/one.mp3", Title: "Song One", Artist: "Artist", Duration: 3 * time.Minute},
		{Path: "/music/two.flac"},
	}

	codec := NewM3UCodec()
	require.NoError(t, codec.Save(path, tracks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "#EXTM3U")
	assert.Contains(t, content, "#EXTINF:180,Artist - Song One")
	assert.Contains(t, content, "#EXTINF:-1,two")

	paths, err := codec.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/music/one.mp3", "/music/two.flac"}, paths)
}
