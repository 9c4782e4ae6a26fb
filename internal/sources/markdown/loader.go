package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/sourcepage/internal/domain"
)

var ErrSourceNotFound = errors.New("source file not found")

// Loader reads category link lists from <dir>/<key>.md
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
	}
}

// Dir returns the sources directory
func (l *Loader) Dir() string {
	return l.dir
}

// Path returns the source file path for a category
func (l *Loader) Path(cat domain.Category) string {
	return filepath.Join(l.dir, cat.SourceFile())
}

// Load reads the category file and extracts its links.
// A missing file yields an error wrapping ErrSourceNotFound.
func (l *Loader) Load(cat domain.Category) ([]domain.Link, error) {
	path := l.Path(cat)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}

	return ExtractLinks(string(data)), nil
}
