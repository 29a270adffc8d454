package sharefs

import (
	"fmt"
	"time"
)

// Kind classifies what a path refers to.
type Kind int

const (
	KindNotFound Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText renders the kind as its tag, so it reads naturally in JSON
// and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a tag produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "file":
		*k = KindFile
	case "directory":
		*k = KindDirectory
	case "not_found":
		*k = KindNotFound
	default:
		return fmt.Errorf("unknown kind %q", b)
	}
	return nil
}

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    Kind      `json:"kind" yaml:"kind"`
	Size    uint64    `json:"size" yaml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// StatResult is the outcome of Stat.
type StatResult struct {
	Size        int64 `json:"size" yaml:"size"`
	IsDirectory bool  `json:"is_directory" yaml:"is_directory"`
}

// FileStats is a metadata snapshot taken from one basic-information and one
// standard-information query on the same handle. Times are unix seconds.
type FileStats struct {
	Kind           Kind   `json:"kind" yaml:"kind"`
	Size           uint64 `json:"size" yaml:"size"`
	AllocationSize uint64 `json:"allocation_size" yaml:"allocation_size"`
	LinkCount      uint32 `json:"link_count" yaml:"link_count"`
	Attributes     uint32 `json:"attributes" yaml:"attributes"`
	Mtime          uint64 `json:"mtime" yaml:"mtime"`
	Atime          uint64 `json:"atime" yaml:"atime"`
	Ctime          uint64 `json:"ctime" yaml:"ctime"`
	Btime          uint64 `json:"btime" yaml:"btime"`
}
