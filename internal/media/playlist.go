package media

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrEmpty is returned by Collect when no playable file was found.
var ErrEmpty = errors.New("no playable audio files")

// ParsePlaylist parses a .m3u/.m3u8/.pls file into file paths. Relative
// entries are resolved against the playlist's directory; URLs are skipped.
func ParsePlaylist(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	baseDir := filepath.Dir(abs)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var entries []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if ext == ".pls" {
			line = plsFileValue(line)
		} else if strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.Trim(line, `"`)
		if line == "" || strings.Contains(line, "://") {
			continue
		}
		entries = append(entries, resolve(line, baseDir))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	return entries, nil
}

// plsFileValue returns the value of a FileN= line, or "".
func plsFileValue(line string) string {
	eq := strings.Index(line, "=")
	if eq <= 0 {
		return ""
	}
	key := strings.TrimSpace(line[:eq])
	if !strings.HasPrefix(strings.ToLower(key), "file") || len(key) == len("file") {
		return ""
	}
	for _, r := range key[len("file"):] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return strings.TrimSpace(line[eq+1:])
}

func resolve(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// ScanDir returns the supported audio files directly inside dir, sorted by
// name case-insensitively.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}

// Collect expands files, directories and playlists into playable paths in
// argument order. Missing or unsupported entries are skipped and counted.
func Collect(args []string) (paths []string, skipped int, err error) {
	for _, arg := range args {
		info, statErr := os.Stat(arg)
		switch {
		case statErr != nil:
			skipped++
		case info.IsDir():
			files, err := ScanDir(arg)
			if err != nil {
				return nil, skipped, err
			}
			paths = append(paths, files...)
		case IsPlaylistExt(filepath.Ext(arg)):
			entries, err := ParsePlaylist(arg)
			if err != nil {
				return nil, skipped, err
			}
			for _, e := range entries {
				if isPlayableFile(e) {
					paths = append(paths, e)
				} else {
					skipped++
				}
			}
		case IsSupportedExt(filepath.Ext(arg)):
			paths = append(paths, arg)
		default:
			skipped++
		}
	}
	if len(paths) == 0 {
		return nil, skipped, ErrEmpty
	}
	return paths, skipped, nil
}

func isPlayableFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir() && IsSupportedExt(filepath.Ext(p))
}
