package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

const (
	// CompilerOutputFile receives the raw solc output of the latest compile
	CompilerOutputFile = "compiled_code.json"
	contractsDir       = "contracts"
)

// ArtifactStore keeps compiler output under the build directory
type ArtifactStore struct {
	buildDir string
}

// NewArtifactStore creates a new ArtifactStore
func NewArtifactStore(cfg *config.RuntimeConfig) *ArtifactStore {
	return &ArtifactStore{
		buildDir: filepath.Join(cfg.ProjectRoot, cfg.Project.Compiler.BuildDir),
	}
}

// SaveCompilerOutput writes the full solc output and returns its path
func (s *ArtifactStore) SaveCompilerOutput(_ context.Context, raw json.RawMessage) (string, error) {
	path := filepath.Join(s.buildDir, CompilerOutputFile)
	if err := writeFileAtomic(path, raw); err != nil {
		return "", fmt.Errorf("failed to write compiler output: %w", err)
	}
	return path, nil
}

func (s *ArtifactStore) artifactPath(name string) string {
	return filepath.Join(s.buildDir, contractsDir, name+".json")
}

// SaveArtifact writes build/contracts/<Name>.json
func (s *ArtifactStore) SaveArtifact(_ context.Context, artifact *domain.Artifact) error {
	if err := writeJSONFile(s.artifactPath(artifact.Name), artifact); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", artifact.Name, err)
	}
	return nil
}

// GetArtifact reads the artifact of a contract
func (s *ArtifactStore) GetArtifact(_ context.Context, name string) (*domain.Artifact, error) {
	data, err := os.ReadFile(s.artifactPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", name, err)
	}
	return &artifact, nil
}

// ListArtifacts returns every stored artifact sorted by name
func (s *ArtifactStore) ListArtifacts(ctx context.Context) ([]*domain.Artifact, error) {
	entries, err := os.ReadDir(filepath.Join(s.buildDir, contractsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Artifact{}, nil
		}
		return nil, fmt.Errorf("failed to read artifacts: %w", err)
	}

	var artifacts []*domain.Artifact
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		artifact, err := s.GetArtifact(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	slices.SortFunc(artifacts, func(a, b *domain.Artifact) int {
		return strings.Compare(a.Name, b.Name)
	})
	return artifacts, nil
}

var _ usecase.ArtifactRepository = (*ArtifactStore)(nil)
