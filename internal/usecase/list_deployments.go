package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Contract keeps only deployments of this contract when set
	Contract string
	// IncludeMocks keeps mock deployments in the list
	IncludeMocks bool
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Network     string
	ChainID     uint64
	Deployments []*domain.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	ByContract map[string]int
	Mocks      int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	client ChainClient
	store  DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, client ChainClient, store DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		client: client,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	chainID := uc.config.Network.ChainID
	if chainID == 0 {
		var err error
		if chainID, err = uc.client.ChainID(ctx); err != nil {
			return nil, err
		}
	}

	deployments, err := uc.store.ListDeployments(ctx, chainID)
	if err != nil {
		return nil, err
	}

	deployments = lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
		if params.Contract != "" && d.Contract != params.Contract {
			return false
		}
		return params.IncludeMocks || !d.Mock
	})

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Network:     uc.config.Network.Name,
		ChainID:     chainID,
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by contract name, then newest first
func sortDeployments(deployments []*domain.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].Contract != deployments[j].Contract {
			return deployments[i].Contract < deployments[j].Contract
		}
		return deployments[i].CreatedAt.After(deployments[j].CreatedAt)
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*domain.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(deployments),
		ByContract: make(map[string]int),
	}

	for _, dep := range deployments {
		summary.ByContract[dep.Contract]++
		if dep.Mock {
			summary.Mocks++
		}
	}

	return summary
}
