package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// offlineInstaller never finds solc on PATH
func offlineInstaller(t *testing.T, dir string) *Installer {
	t.Helper()
	i := NewInstaller(dir, discardLogger())
	i.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	return i
}

const cannedOutput = `{
  "contracts": {
    "contracts/SimpleStorage.sol": {
      "SimpleStorage": {
        "abi": [{"inputs":[],"name":"retrieve","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}],
        "metadata": "{\"compiler\":{\"version\":\"0.6.0\"}}",
        "evm": {
          "bytecode": {"object": "6080604052", "sourceMap": "57:1:0:-:0"},
          "deployedBytecode": {"object": "60806040"}
        }
      }
    }
  },
  "errors": [
    {"severity": "warning", "type": "Warning", "message": "SPDX license identifier not provided", "formattedMessage": "Warning: SPDX"}
  ]
}`

// writeFakeSolc installs a shell script answering --standard-json with output
func writeFakeSolc(t *testing.T, dir, version, output string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solc is a shell script")
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	script := fmt.Sprintf("#!/bin/sh\ncat > /dev/null\ncat <<'JSON'\n%s\nJSON\n", output)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solc-"+version), []byte(script), 0755))
}

func TestSolc_Compile(t *testing.T) {
	dir := t.TempDir()
	writeFakeSolc(t, dir, "0.6.0", cannedOutput)
	solc := NewSolc(offlineInstaller(t, dir), discardLogger())

	result, err := solc.Compile(context.Background(), domain.CompileRequest{
		Version: "0.6.0",
		Sources: map[string]string{"contracts/SimpleStorage.sol": "pragma solidity ^0.6.0;"},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.6.0", result.Version)
	require.Contains(t, result.Artifacts, "SimpleStorage")
	artifact := result.Artifacts["SimpleStorage"]
	assert.Equal(t, "contracts/SimpleStorage.sol", artifact.SourcePath)
	assert.Equal(t, "0x6080604052", artifact.Bytecode)
	assert.Equal(t, "0x60806040", artifact.DeployedBytecode)
	assert.Equal(t, "57:1:0:-:0", artifact.SourceMap)
	assert.Equal(t, "0.6.0", artifact.Compiler)

	parsed, err := artifact.ParsedABI()
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "retrieve")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "warning", result.Warnings[0].Severity)
	assert.True(t, json.Valid(result.Raw))
}

func TestSolc_CompilationErrors(t *testing.T) {
	dir := t.TempDir()
	writeFakeSolc(t, dir, "0.6.6", `{"errors":[{"severity":"error","type":"ParserError","message":"Expected ';'","formattedMessage":"ParserError: Expected ';'"}]}`)
	solc := NewSolc(offlineInstaller(t, dir), discardLogger())

	_, err := solc.Compile(context.Background(), domain.CompileRequest{
		Version: "0.6.6",
		Sources: map[string]string{"contracts/Broken.sol": "contract"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompilationFailed)

	var compErr domain.CompilationErr
	require.ErrorAs(t, err, &compErr)
	assert.Len(t, compErr.Errors, 1)
	assert.Contains(t, err.Error(), "ParserError")
}

func TestSolc_NoSources(t *testing.T) {
	solc := NewSolc(offlineInstaller(t, t.TempDir()), discardLogger())
	_, err := solc.Compile(context.Background(), domain.CompileRequest{Version: "0.6.6"})
	assert.Error(t, err)
}

func TestBuildInput(t *testing.T) {
	input := buildInput(domain.CompileRequest{
		Version:       "0.6.6",
		Sources:       map[string]string{"contracts/A.sol": "contract A {}"},
		EVMVersion:    "istanbul",
		Optimizer:     true,
		OptimizerRuns: 200,
	})

	data, err := json.Marshal(input)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Solidity", decoded["language"])

	settings := decoded["settings"].(map[string]any)
	assert.Equal(t, "istanbul", settings["evmVersion"])
	assert.Equal(t, map[string]any{"enabled": true, "runs": float64(200)}, settings["optimizer"])

	selection := settings["outputSelection"].(map[string]any)["*"].(map[string]any)["*"].([]any)
	assert.ElementsMatch(t, []any{"abi", "metadata", "evm.bytecode", "evm.deployedBytecode", "evm.sourceMap"}, selection)

	sources := decoded["sources"].(map[string]any)
	assert.Equal(t, map[string]any{"content": "contract A {}"}, sources["contracts/A.sol"])
}

func newMirror(t *testing.T, version string, payload []byte, checksum string) *httptest.Server {
	t.Helper()
	if checksum == "" {
		sum := sha256.Sum256(payload)
		checksum = "0x" + hex.EncodeToString(sum[:])
	}
	path := fmt.Sprintf("solc-linux-amd64-v%s+commit.6c089d02", version)

	mux := http.NewServeMux()
	mux.HandleFunc("/linux-amd64/list.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"builds": []map[string]string{
				{"path": path, "version": version, "sha256": checksum},
			},
		})
	})
	mux.HandleFunc("/linux-amd64/"+path, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestInstaller_Install(t *testing.T) {
	payload := []byte("#!/bin/sh\necho solc\n")
	server := newMirror(t, "0.6.6", payload, "")

	dir := t.TempDir()
	installer := offlineInstaller(t, dir)
	installer.baseURL = server.URL
	installer.platform = "linux-amd64"

	_, ok := installer.Find(context.Background(), "0.6.6")
	assert.False(t, ok)

	bin, err := installer.Ensure(context.Background(), "0.6.6")
	require.NoError(t, err)
	assert.Equal(t, installer.binaryPath("0.6.6"), bin)

	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	found, ok := installer.Find(context.Background(), "v0.6.6")
	assert.True(t, ok)
	assert.Equal(t, bin, found)
}

func TestInstaller_ChecksumMismatch(t *testing.T) {
	server := newMirror(t, "0.6.6", []byte("binary"), "0xdeadbeef")

	installer := offlineInstaller(t, t.TempDir())
	installer.baseURL = server.URL
	installer.platform = "linux-amd64"

	_, err := installer.Install(context.Background(), "0.6.6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	_, ok := installer.Find(context.Background(), "0.6.6")
	assert.False(t, ok)
}

func TestInstaller_UnknownVersion(t *testing.T) {
	server := newMirror(t, "0.6.6", []byte("binary"), "")

	installer := offlineInstaller(t, t.TempDir())
	installer.baseURL = server.URL
	installer.platform = "linux-amd64"

	_, err := installer.Install(context.Background(), "0.4.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestInstaller_PrefersPath(t *testing.T) {
	installer := NewInstaller(t.TempDir(), discardLogger())
	installer.lookPath = func(name string) (string, error) {
		if name == "solc-0.6.6" {
			return "/usr/local/bin/solc-0.6.6", nil
		}
		return "", exec.ErrNotFound
	}

	bin, ok := installer.Find(context.Background(), "0.6.6")
	require.True(t, ok)
	assert.Equal(t, "/usr/local/bin/solc-0.6.6", bin)
}

// TestSolc_ProjectContracts compiles the shipped contracts with a locally
// installed solc and is skipped without one
func TestSolc_ProjectContracts(t *testing.T) {
	ctx := context.Background()
	installer, err := ProvideInstaller(discardLogger())
	require.NoError(t, err)
	if _, ok := installer.Find(ctx, "0.6.6"); !ok {
		t.Skip("solc 0.6.6 not installed")
	}

	root := filepath.Join("..", "..", "..")
	sources := map[string]string{}
	for _, rel := range []string{
		"contracts/Lottery.sol",
		"contracts/interfaces/AggregatorV3Interface.sol",
		"contracts/test/MockV3Aggregator.sol",
	} {
		data, err := os.ReadFile(filepath.Join(root, rel))
		require.NoError(t, err)
		sources[rel] = string(data)
	}

	result, err := NewSolc(installer, discardLogger()).Compile(ctx, domain.CompileRequest{
		Version: "0.6.6",
		Sources: sources,
	})
	require.NoError(t, err)
	require.Contains(t, result.Artifacts, "Lottery")
	require.Contains(t, result.Artifacts, "MockV3Aggregator")

	code, err := result.Artifacts["Lottery"].BytecodeBytes()
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}
