package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// DeployRequest describes a contract creation
type DeployRequest struct {
	From            *domain.Account
	Artifact        *domain.Artifact
	ConstructorArgs []byte
	Value           *big.Int
	Nonce           *uint64
	Mock            bool
}

// ContractDeployer sends creation transactions and records the deployments
type ContractDeployer struct {
	config      *config.RuntimeConfig
	client      ChainClient
	deployments DeploymentRepository
	log         *slog.Logger
}

// NewContractDeployer creates a new ContractDeployer
func NewContractDeployer(
	cfg *config.RuntimeConfig,
	client ChainClient,
	deployments DeploymentRepository,
	log *slog.Logger,
) *ContractDeployer {
	return &ContractDeployer{
		config:      cfg,
		client:      client,
		deployments: deployments,
		log:         log.With("component", "ContractDeployer"),
	}
}

// Deploy creates the contract and appends a deployment record
func (d *ContractDeployer) Deploy(ctx context.Context, req DeployRequest) (*domain.Deployment, *domain.TxResult, error) {
	code, err := req.Artifact.BytecodeBytes()
	if err != nil {
		return nil, nil, err
	}

	data := make([]byte, 0, len(code)+len(req.ConstructorArgs))
	data = append(data, code...)
	data = append(data, req.ConstructorArgs...)

	d.log.Debug("deploying contract", "contract", req.Artifact.Name, "from", req.From.Address.Hex())

	tx, err := d.client.Send(ctx, &domain.TxRequest{
		From:  req.From,
		Data:  data,
		Value: req.Value,
		Nonce: req.Nonce,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deploy %s: %w", req.Artifact.Name, err)
	}

	chainID, err := d.client.ChainID(ctx)
	if err != nil {
		return nil, nil, err
	}

	deployment := &domain.Deployment{
		Contract:    req.Artifact.Name,
		Address:     tx.ContractAddress,
		TxHash:      tx.Hash,
		BlockNumber: tx.BlockNumber,
		Deployer:    req.From.Address,
		Network:     d.config.Network.Name,
		ChainID:     chainID,
		Mock:        req.Mock,
		CreatedAt:   time.Now().UTC(),
	}
	if err := d.deployments.SaveDeployment(ctx, deployment); err != nil {
		return nil, nil, fmt.Errorf("failed to record deployment of %s: %w", req.Artifact.Name, err)
	}

	d.log.Info("contract deployed", "contract", deployment.Contract, "address", deployment.Address.Hex(), "tx", tx.Hash.Hex())
	return deployment, tx, nil
}
