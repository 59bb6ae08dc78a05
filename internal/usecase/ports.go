package usecase

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// DevAccounts provides the pre-funded accounts of local chains
type DevAccounts interface {
	Count() int
	// Account returns the account at index or domain.ErrIndexOutOfRange
	Account(index int) (*domain.Account, error)
	Accounts() ([]*domain.Account, error)
}

// KeystoreRepository stores encrypted named credentials
type KeystoreRepository interface {
	List(ctx context.Context) ([]domain.KeystoreEntry, error)
	// Get returns the entry for id or domain.ErrCredentialNotFound
	Get(ctx context.Context, id string) (*domain.KeystoreEntry, error)
	Load(ctx context.Context, id string, password string) (*domain.Account, error)
	Save(ctx context.Context, id string, key *ecdsa.PrivateKey, password string) (*domain.KeystoreEntry, error)
	Delete(ctx context.Context, id string) error
}

// PasswordProvider supplies keystore passwords
type PasswordProvider interface {
	Password(ctx context.Context, id string, confirm bool) (string, error)
}

// ChainClient builds, signs and submits transactions against the active network
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	CodeAt(ctx context.Context, contract common.Address) ([]byte, error)
	// Call runs a non-mutating call against the latest block
	Call(ctx context.Context, from common.Address, to common.Address, data []byte) ([]byte, error)
	// Send signs a legacy transaction for req, submits it and waits for the receipt
	Send(ctx context.Context, req *domain.TxRequest) (*domain.TxResult, error)
}

// Compiler compiles Solidity sources with a pinned solc version
type Compiler interface {
	Compile(ctx context.Context, req domain.CompileRequest) (*domain.CompileResult, error)
}

// SourceRepository reads contract sources from the project
type SourceRepository interface {
	// ReadSource returns the content of a project-relative source file
	ReadSource(ctx context.Context, path string) (string, error)
	// ReadSources returns every .sol file below dir keyed by project-relative path
	ReadSources(ctx context.Context, dir string) (map[string]string, error)
}

// ArtifactRepository persists compiler output
type ArtifactRepository interface {
	SaveCompilerOutput(ctx context.Context, raw json.RawMessage) (string, error)
	SaveArtifact(ctx context.Context, artifact *domain.Artifact) error
	// GetArtifact returns the artifact for a contract or domain.ErrArtifactNotFound
	GetArtifact(ctx context.Context, name string) (*domain.Artifact, error)
	ListArtifacts(ctx context.Context) ([]*domain.Artifact, error)
}

// DeploymentRepository persists deployment records per chain
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *domain.Deployment) error
	ListDeployments(ctx context.Context, chainID uint64) ([]*domain.Deployment, error)
	// LatestDeployment returns the newest record of contract or domain.ErrNotFound
	LatestDeployment(ctx context.Context, chainID uint64, contract string) (*domain.Deployment, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// LocalConfigStore manages local configuration persistence
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// NetworkSelector handles interactive selection of networks
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// AnvilManager manages local anvil node instances
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
	StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
