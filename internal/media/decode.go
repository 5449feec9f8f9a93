package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/google/uuid"
)

// ErrUnsupported is returned for files with an unknown extension.
var ErrUnsupported = errors.New("unsupported file type")

// Info describes a track before it is decoded.
type Info struct {
	ID    string
	Title string
	Path  string
}

// Describe builds the Info for path, reading the ID3 title when present and
// falling back to the file name.
func Describe(path string) Info {
	return Info{
		ID:    uuid.NewString(),
		Title: ReadTitle(path),
		Path:  path,
	}
}

// ReadTitle returns the ID3v2 title of path, or the base name without
// extension.
func ReadTitle(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			title := strings.TrimSpace(tag.Title())
			if artist := strings.TrimSpace(tag.Artist()); artist != "" && title != "" {
				title = artist + " - " + title
			}
			if title != "" {
				return title
			}
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Open decodes the file at path. Closing the returned streamer closes the
// file.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}
