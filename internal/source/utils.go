package source

import (
	"path/filepath"
	"slices"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Returns the (possibly new) slice and whether anything was replaced.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Fast path: no \r at all.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// normalizeNFC brings the content into Unicode NFC so that identifier
// comparison and keyword lookup see one canonical spelling.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// Locate converts a byte offset into a 1-based line/column position
// using the file's line index. Offsets past the end of the file resolve
// to the position just past the last character.
func Locate(f *File, off uint32) LineCol {
	lineIdx := f.LineIdx
	// No newlines: the whole file is one line.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search for the last newline strictly before off. A '\n'
	// byte still belongs to the line it terminates.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // 0-based index of the last newline strictly before off

	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := lineIdx[line] + 1
	return LineCol{Line: uint32(line + 2), Col: off - startOff + 1}
}

// DisplayPath shortens a path for diagnostics: files in the current
// directory are shown by bare name, everything else stays as given.
func DisplayPath(p string) string {
	if p == "" {
		return InteractiveName
	}
	cleaned := filepath.Clean(p)
	if filepath.Dir(cleaned) == "." {
		return filepath.Base(cleaned)
	}
	return cleaned
}

func normalizePath(p string) string {
	// One canonical shape for cross-platform diffs.
	return filepath.ToSlash(filepath.Clean(p))
}
