package pathresolve

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileScheme = "file://"

// Resolve converts a raw (folder reference, file reference) pair into a
// best-effort absolute path. It never fails: the returned path may not
// exist, and existence is the caller's explicit check. An empty file
// reference yields an empty path.
//
// Known catalog malformations handled before the naive join:
//   - the folder already ends with the filename
//   - the filename segment is duplicated ("…/song.flac/song.flac")
//   - the filename appears as an interior segment of the folder
//
// When the joined path does not exist and contains backslashes, the
// backslashes are converted to forward slashes; some rows were captured
// under a different path-separator convention.
func Resolve(folderRef, fileRef string) string {
	fileName := percentDecode(strings.TrimSpace(fileRef))
	if fileName == "" {
		return ""
	}

	folder := decodeFolder(strings.TrimSpace(folderRef))
	folder = strings.TrimRight(folder, "/")

	var full string
	switch {
	case folder == "":
		// The filename may already be an absolute path.
		full = fileName
	case strings.HasSuffix(folder, "/"+fileName+"/"+fileName):
		// Duplicated segment bug: collapse to a single occurrence.
		full = strings.TrimSuffix(folder, "/"+fileName)
	case folder == fileName || strings.HasSuffix(folder, "/"+fileName):
		// Folder already includes the filename at the end.
		full = folder
	default:
		if idx := strings.Index(folder, "/"+fileName+"/"); idx >= 0 {
			// Filename buried mid-path: truncate at its first occurrence.
			full = folder[:idx] + "/" + fileName
		} else {
			full = folder + "/" + fileName
		}
	}

	if !exists(full) && strings.Contains(full, "\\") {
		full = strings.ReplaceAll(full, "\\", "/")
	}
	return filepath.Clean(full)
}

func decodeFolder(folder string) string {
	if !strings.HasPrefix(folder, fileScheme) {
		return percentDecode(folder)
	}
	trimmed := strings.TrimPrefix(folder, fileScheme)
	if rest, ok := strings.CutPrefix(trimmed, "localhost/"); ok {
		trimmed = "/" + rest
	}
	return percentDecode(trimmed)
}

func percentDecode(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
