package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	// The zero value is NoFileID: spans carrying it are synthetic, meaning
	// they belong to a detached node built during macro expansion rather
	// than to any real file.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks a span that does not point into any registered file.
const NoFileID FileID = 0

// IsValid reports whether the id refers to a registered file.
func (id FileID) IsValid() bool { return id != NoFileID }

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Location is a fully resolved source position: byte offset plus line/column.
type Location struct {
	File   FileID
	Offset uint32
	Line   uint32 // 1-based
	Col    uint32 // 1-based
}
