package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// SourceRepository reads Solidity sources below the project root
type SourceRepository struct {
	projectRoot string
}

// NewSourceRepository creates a new SourceRepository
func NewSourceRepository(cfg *config.RuntimeConfig) *SourceRepository {
	return &SourceRepository{projectRoot: cfg.ProjectRoot}
}

// ReadSource returns the content of a project-relative file
func (r *SourceRepository) ReadSource(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.projectRoot, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", path, err)
	}
	return string(data), nil
}

// ReadSources returns every .sol file below dir keyed by its slash-separated
// project-relative path, which is also its solc source unit name
func (r *SourceRepository) ReadSources(ctx context.Context, dir string) (map[string]string, error) {
	root := filepath.Join(r.projectRoot, filepath.FromSlash(dir))
	sources := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sol" {
			return nil
		}

		rel, err := filepath.Rel(r.projectRoot, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sources[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read sources from %s: %w", dir, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .sol files found in %s", dir)
	}

	return sources, nil
}

var _ usecase.SourceRepository = (*SourceRepository)(nil)
