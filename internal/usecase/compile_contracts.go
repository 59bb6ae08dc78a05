package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// CompileContractsResult contains the result of compiling the project contracts
type CompileContractsResult struct {
	Version    string
	OutputPath string
	Artifacts  []*domain.Artifact
	Warnings   []domain.CompilerError
}

// CompileContracts compiles every source under the contracts directory
type CompileContracts struct {
	config    *config.RuntimeConfig
	sources   SourceRepository
	compiler  Compiler
	artifacts ArtifactRepository
	progress  ProgressSink
	log       *slog.Logger
}

// NewCompileContracts creates a new CompileContracts use case
func NewCompileContracts(
	cfg *config.RuntimeConfig,
	sources SourceRepository,
	compiler Compiler,
	artifacts ArtifactRepository,
	progress ProgressSink,
	log *slog.Logger,
) *CompileContracts {
	return &CompileContracts{
		config:    cfg,
		sources:   sources,
		compiler:  compiler,
		artifacts: artifacts,
		progress:  progress,
		log:       log.With("component", "CompileContracts"),
	}
}

// Run compiles the project and writes the compiler output and one artifact per contract
func (uc *CompileContracts) Run(ctx context.Context) (*CompileContractsResult, error) {
	compilerCfg := uc.config.Project.Compiler

	sources, err := uc.sources.ReadSources(ctx, compilerCfg.ContractsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no Solidity sources found in %s", compilerCfg.ContractsDir)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "compiling",
		Message: fmt.Sprintf("Compiling %d files with solc %s", len(sources), compilerCfg.SolcVersion),
		Spinner: true,
	})

	result, err := uc.compiler.Compile(ctx, domain.CompileRequest{
		Version:       compilerCfg.SolcVersion,
		Sources:       sources,
		EVMVersion:    compilerCfg.EVMVersion,
		Optimizer:     compilerCfg.Optimizer,
		OptimizerRuns: compilerCfg.OptimizerRuns,
	})
	if err != nil {
		return nil, err
	}

	outputPath, err := uc.artifacts.SaveCompilerOutput(ctx, result.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to save compiler output: %w", err)
	}

	names := lo.Keys(result.Artifacts)
	slices.Sort(names)

	artifacts := make([]*domain.Artifact, 0, len(names))
	for _, name := range names {
		artifact := result.Artifacts[name]
		if err := uc.artifacts.SaveArtifact(ctx, artifact); err != nil {
			return nil, fmt.Errorf("failed to save artifact %s: %w", name, err)
		}
		artifacts = append(artifacts, artifact)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "compiled",
		Current: len(artifacts),
		Total:   len(artifacts),
		Message: "Compilation finished",
	})
	uc.log.Debug("compiled contracts", "count", len(artifacts), "output", outputPath)

	return &CompileContractsResult{
		Version:    result.Version,
		OutputPath: outputPath,
		Artifacts:  artifacts,
		Warnings:   result.Warnings,
	}, nil
}

// Artifact returns the compiled artifact of a contract, compiling the project
// first when the build directory does not have it yet
func (uc *CompileContracts) Artifact(ctx context.Context, name string) (*domain.Artifact, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, name)
	if err == nil {
		return artifact, nil
	}
	if !errors.Is(err, domain.ErrArtifactNotFound) {
		return nil, err
	}

	uc.log.Info("artifact missing, compiling project", "contract", name)
	if _, err := uc.Run(ctx); err != nil {
		return nil, err
	}

	return uc.artifacts.GetArtifact(ctx, name)
}
