package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
)

// outputSelection is requested for every contract of every source unit
var outputSelection = []string{
	"abi",
	"metadata",
	"evm.bytecode",
	"evm.deployedBytecode",
	"evm.sourceMap",
}

// Solc compiles sources with `solc --standard-json`
type Solc struct {
	installer *Installer
	log       *slog.Logger
}

// NewSolc creates a compiler that resolves binaries through installer
func NewSolc(installer *Installer, log *slog.Logger) *Solc {
	return &Solc{
		installer: installer,
		log:       log.With("component", "Solc"),
	}
}

type standardInput struct {
	Language string                    `json:"language"`
	Sources  map[string]standardSource `json:"sources"`
	Settings standardSettings          `json:"settings"`
}

type standardSource struct {
	Content string `json:"content"`
}

type standardSettings struct {
	Optimizer       *optimizerSettings             `json:"optimizer,omitempty"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type optimizerSettings struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

type standardOutput struct {
	Errors    []domain.CompilerError                 `json:"errors"`
	Contracts map[string]map[string]standardContract `json:"contracts"`
}

type standardContract struct {
	ABI      json.RawMessage `json:"abi"`
	Metadata string          `json:"metadata"`
	EVM      struct {
		Bytecode struct {
			Object    string `json:"object"`
			SourceMap string `json:"sourceMap"`
		} `json:"bytecode"`
		DeployedBytecode struct {
			Object string `json:"object"`
		} `json:"deployedBytecode"`
	} `json:"evm"`
}

// Compile runs solc on req.Sources and returns one artifact per contract
func (s *Solc) Compile(ctx context.Context, req domain.CompileRequest) (*domain.CompileResult, error) {
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("no sources to compile")
	}

	bin, err := s.installer.Ensure(ctx, req.Version)
	if err != nil {
		return nil, err
	}

	input, err := json.Marshal(buildInput(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode compiler input: %w", err)
	}

	start := time.Now()
	s.log.Debug("running solc", "bin", bin, "version", req.Version, "sources", len(req.Sources))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--standard-json")
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("solc %s failed: %w\nOutput: %s", req.Version, err, strings.TrimSpace(stderr.String()))
	}
	s.log.Debug("solc completed", "duration", time.Since(start))

	return parseOutput(req.Version, stdout.Bytes())
}

func buildInput(req domain.CompileRequest) standardInput {
	input := standardInput{
		Language: "Solidity",
		Sources: lo.MapValues(req.Sources, func(content string, _ string) standardSource {
			return standardSource{Content: content}
		}),
		Settings: standardSettings{
			EVMVersion: req.EVMVersion,
			OutputSelection: map[string]map[string][]string{
				"*": {"*": outputSelection},
			},
		},
	}
	if req.Optimizer {
		input.Settings.Optimizer = &optimizerSettings{Enabled: true, Runs: req.OptimizerRuns}
	}
	return input
}

func parseOutput(version string, raw []byte) (*domain.CompileResult, error) {
	var out standardOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse solc output: %w", err)
	}

	errs, warnings := lo.FilterReject(out.Errors, func(e domain.CompilerError, _ int) bool {
		return e.Severity == "error"
	})
	if len(errs) > 0 {
		return nil, domain.CompilationErr{Errors: errs}
	}

	result := &domain.CompileResult{
		Version:   version,
		Raw:       json.RawMessage(raw),
		Artifacts: make(map[string]*domain.Artifact),
		Warnings:  warnings,
	}

	// Iterate source units in order so duplicate contract names resolve stably
	sources := lo.Keys(out.Contracts)
	slices.Sort(sources)
	for _, source := range sources {
		for name, c := range out.Contracts[source] {
			if existing, ok := result.Artifacts[name]; ok {
				return nil, fmt.Errorf("contract %s is defined in both %s and %s", name, existing.SourcePath, source)
			}
			result.Artifacts[name] = &domain.Artifact{
				Name:             name,
				SourcePath:       source,
				ABI:              c.ABI,
				Bytecode:         hexPrefixed(c.EVM.Bytecode.Object),
				DeployedBytecode: hexPrefixed(c.EVM.DeployedBytecode.Object),
				SourceMap:        c.EVM.Bytecode.SourceMap,
				Metadata:         c.Metadata,
				Compiler:         version,
			}
		}
	}

	return result, nil
}

func hexPrefixed(object string) string {
	if object == "" || strings.HasPrefix(object, "0x") {
		return object
	}
	return "0x" + object
}
