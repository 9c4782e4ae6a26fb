package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/sourcepage/internal/catalog"
	"github.com/MrSnakeDoc/sourcepage/internal/logger"
	"github.com/MrSnakeDoc/sourcepage/internal/render"
	"github.com/MrSnakeDoc/sourcepage/internal/sources/markdown"
	"github.com/MrSnakeDoc/sourcepage/internal/utils"
)

// ErrSourcesDirMissing is returned before any work when the sources directory is absent.
var ErrSourcesDirMissing = errors.New("sources directory not found")

// Report summarizes one build. Category keys are listed in page order.
type Report struct {
	Output   string   // path of the written page
	Rendered []string // categories that produced a section
	Empty    []string // categories whose file had no links
	Missing  []string // categories whose file does not exist
	Links    int      // links rendered across all sections
	Bytes    int      // size of the written page
}

// Builder turns the sources directory into the static page.
type Builder struct {
	catalog *catalog.Catalog
	loader  *markdown.Loader
	output  string
	logger  logger.Logger
}

// NewBuilder creates a builder reading <sourcesDir>/<key>.md for every
// catalog category and writing the page to outputFile.
func NewBuilder(cat *catalog.Catalog, sourcesDir, outputFile string, log logger.Logger) *Builder {
	return &Builder{
		catalog: cat,
		loader:  markdown.NewLoader(sourcesDir),
		output:  outputFile,
		logger:  log,
	}
}

// SourcesDir returns the directory the builder reads from.
func (b *Builder) SourcesDir() string { return b.loader.Dir() }

// Output returns the page path the builder writes to.
func (b *Builder) Output() string { return b.output }

// Render assembles the full page without touching the output file.
func (b *Builder) Render() (string, Report, error) {
	report := Report{Output: b.output}

	if err := b.checkSourcesDir(); err != nil {
		return "", report, err
	}

	var body strings.Builder
	for _, cat := range b.catalog.Categories() {
		path := b.loader.Path(cat)

		links, err := b.loader.Load(cat)
		if errors.Is(err, markdown.ErrSourceNotFound) {
			b.logger.Warn("source file not found, skipping category",
				logger.String("category", cat.Key),
				logger.String("path", path))
			report.Missing = append(report.Missing, cat.Key)
			continue
		}
		if err != nil {
			return "", report, fmt.Errorf("category %s: %w", cat.Key, err)
		}

		if len(links) == 0 {
			b.logger.Debug("no links found, category omitted",
				logger.String("category", cat.Key),
				logger.String("path", path))
			report.Empty = append(report.Empty, cat.Key)
			continue
		}

		body.WriteString(render.Section(cat, links))
		report.Rendered = append(report.Rendered, cat.Key)
		report.Links += len(links)
	}

	page := render.Page(body.String())
	report.Bytes = len(page)
	return page, report, nil
}

// Build renders the page and overwrites the output file with it.
// If the sources directory is missing, the output file is left untouched.
func (b *Builder) Build() (Report, error) {
	page, report, err := b.Render()
	if err != nil {
		return report, err
	}

	if err := writeFile(b.output, []byte(page)); err != nil {
		return report, err
	}

	b.logger.Info("✅ Successfully rebuilt "+b.output,
		logger.Strings("sections", report.Rendered),
		logger.Int("links", report.Links),
		logger.Int("missing", len(report.Missing)),
		logger.Int("bytes", report.Bytes))

	return report, nil
}

func (b *Builder) checkSourcesDir() error {
	dir := b.loader.Dir()
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourcesDirMissing, dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat sources directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrSourcesDirMissing, dir)
	}
	return nil
}

// writeFile replaces path in one rename so readers never see a partial page.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		utils.Close(tmp)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace output file %s: %w", path, err)
	}
	return nil
}
