package cv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo describes a CV document written to local disk.
type FileInfo struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCVFile persists a validated CV document as pretty-printed JSON under
// directory, creating it if needed. A ".json" suffix is ensured.
func CreateCVFile(jsonCV any, filename, directory string) (*FileInfo, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}
	path := filepath.Join(directory, filename)

	serialized, err := json.MarshalIndent(jsonCV, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Filename:  filepath.Base(path),
		Path:      path,
		Size:      stat.Size(),
		CreatedAt: stat.ModTime(),
	}, nil
}
