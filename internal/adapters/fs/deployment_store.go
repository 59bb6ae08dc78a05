package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

const deploymentsDir = "deployments"

// DeploymentStore appends deployment records to build/deployments/<chainId>.json
type DeploymentStore struct {
	dir string
	mu  sync.Mutex
}

// NewDeploymentStore creates a new DeploymentStore
func NewDeploymentStore(cfg *config.RuntimeConfig) *DeploymentStore {
	return &DeploymentStore{
		dir: filepath.Join(cfg.ProjectRoot, cfg.Project.Compiler.BuildDir, deploymentsDir),
	}
}

func (s *DeploymentStore) path(chainID uint64) string {
	return filepath.Join(s.dir, strconv.FormatUint(chainID, 10)+".json")
}

func (s *DeploymentStore) load(chainID uint64) ([]*domain.Deployment, error) {
	data, err := os.ReadFile(s.path(chainID))
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Deployment{}, nil
		}
		return nil, fmt.Errorf("failed to read deployments: %w", err)
	}

	var deployments []*domain.Deployment
	if err := json.Unmarshal(data, &deployments); err != nil {
		return nil, fmt.Errorf("failed to parse deployments for chain %d: %w", chainID, err)
	}
	return deployments, nil
}

// SaveDeployment appends a record, assigning its id and timestamp when unset
func (s *DeploymentStore) SaveDeployment(_ context.Context, deployment *domain.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deployments, err := s.load(deployment.ChainID)
	if err != nil {
		return err
	}

	if deployment.ID == "" {
		deployment.ID = uuid.NewString()
	}
	if deployment.CreatedAt.IsZero() {
		deployment.CreatedAt = time.Now().UTC()
	}
	deployments = append(deployments, deployment)

	if err := writeJSONFile(s.path(deployment.ChainID), deployments); err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}
	return nil
}

// ListDeployments returns the records of a chain in insertion order
func (s *DeploymentStore) ListDeployments(_ context.Context, chainID uint64) ([]*domain.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(chainID)
}

// LatestDeployment returns the last recorded deployment of contract
func (s *DeploymentStore) LatestDeployment(ctx context.Context, chainID uint64, contract string) (*domain.Deployment, error) {
	deployments, err := s.ListDeployments(ctx, chainID)
	if err != nil {
		return nil, err
	}

	latest, _, ok := lo.FindLastIndexOf(deployments, func(d *domain.Deployment) bool {
		return d.Contract == contract
	})
	if !ok {
		return nil, fmt.Errorf("%w: no %s deployment on chain %d", domain.ErrNotFound, contract, chainID)
	}
	return latest, nil
}

var _ usecase.DeploymentRepository = (*DeploymentStore)(nil)
