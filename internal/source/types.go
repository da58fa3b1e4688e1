package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// InteractiveName is the display name used for sessions with no backing file.
const InteractiveName = "(interactive)"

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Name    string // display name used in spans and diagnostics
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Both fields are 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
