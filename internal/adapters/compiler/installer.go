package compiler

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	// DefaultBinariesURL is the official solc binary mirror
	DefaultBinariesURL = "https://binaries.soliditylang.org"
	// SolcDirEnv overrides the directory downloaded compilers are stored in
	SolcDirEnv = "SCRIPTKIT_SOLC_DIR"
)

// Installer finds solc binaries for pinned versions and downloads missing ones
type Installer struct {
	dir        string
	baseURL    string
	platform   string
	httpClient *http.Client
	log        *slog.Logger

	// lookPath searches PATH; replaced in tests
	lookPath func(string) (string, error)

	mu       sync.Mutex
	resolved map[string]string
}

// NewInstaller creates an installer that keeps downloads in dir
func NewInstaller(dir string, log *slog.Logger) *Installer {
	return &Installer{
		dir:        dir,
		baseURL:    DefaultBinariesURL,
		platform:   platform(),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		log:        log.With("component", "SolcInstaller"),
		lookPath:   exec.LookPath,
		resolved:   make(map[string]string),
	}
}

// ProvideInstaller creates the user-wide installer for Wire dependency injection
func ProvideInstaller(log *slog.Logger) (*Installer, error) {
	dir := os.Getenv(SolcDirEnv)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".scriptkit", "solc")
	}
	return NewInstaller(dir, log), nil
}

func platform() string {
	switch runtime.GOOS {
	case "darwin":
		return "macosx-amd64"
	case "windows":
		return "windows-amd64"
	default:
		return "linux-amd64"
	}
}

// Ensure returns a solc binary for version, downloading it when no local
// binary matches
func (i *Installer) Ensure(ctx context.Context, version string) (string, error) {
	if bin, ok := i.Find(ctx, version); ok {
		return bin, nil
	}
	return i.Install(ctx, version)
}

// Find looks for a local solc binary of version: solc-<version> on PATH, solc
// on PATH reporting that version, then the download directory
func (i *Installer) Find(ctx context.Context, version string) (string, bool) {
	version = strings.TrimPrefix(version, "v")

	i.mu.Lock()
	bin, ok := i.resolved[version]
	i.mu.Unlock()
	if ok {
		return bin, true
	}

	bin, ok = i.find(ctx, version)
	if ok {
		i.log.Debug("using solc", "version", version, "bin", bin)
		i.mu.Lock()
		i.resolved[version] = bin
		i.mu.Unlock()
	}
	return bin, ok
}

func (i *Installer) find(ctx context.Context, version string) (string, bool) {
	if bin, err := i.lookPath("solc-" + version); err == nil {
		return bin, true
	}

	if bin, err := i.lookPath("solc"); err == nil && i.reportsVersion(ctx, bin, version) {
		return bin, true
	}

	bin := i.binaryPath(version)
	if info, err := os.Stat(bin); err == nil && !info.IsDir() {
		return bin, true
	}

	return "", false
}

func (i *Installer) binaryPath(version string) string {
	name := "solc-" + version
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(i.dir, name)
}

// reportsVersion checks the "Version: 0.6.6+commit..." line of solc --version
func (i *Installer) reportsVersion(ctx context.Context, bin, version string) bool {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return false
	}
	return bytes.Contains(out, []byte("Version: "+version+"+"))
}

type buildList struct {
	Builds []buildInfo `json:"builds"`
}

type buildInfo struct {
	Path    string `json:"path"`
	Version string `json:"version"`
	SHA256  string `json:"sha256"`
}

// Install downloads solc version from the binaries mirror, verifies its
// checksum and stores it in the download directory
func (i *Installer) Install(ctx context.Context, version string) (string, error) {
	version = strings.TrimPrefix(version, "v")
	i.log.Info("installing solc", "version", version, "platform", i.platform)

	build, err := i.lookupBuild(ctx, version)
	if err != nil {
		return "", err
	}

	data, err := i.get(ctx, fmt.Sprintf("%s/%s/%s", i.baseURL, i.platform, build.Path))
	if err != nil {
		return "", fmt.Errorf("failed to download solc %s: %w", version, err)
	}

	sum := sha256.Sum256(data)
	if got, want := hex.EncodeToString(sum[:]), strings.TrimPrefix(build.SHA256, "0x"); got != want {
		return "", fmt.Errorf("checksum mismatch for solc %s: expected %s, got %s", version, want, got)
	}

	if err := os.MkdirAll(i.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create solc directory: %w", err)
	}

	bin := i.binaryPath(version)
	tmp := bin + ".tmp"
	if err := os.WriteFile(tmp, data, 0755); err != nil {
		return "", fmt.Errorf("failed to write solc binary: %w", err)
	}
	if err := os.Rename(tmp, bin); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to install solc binary: %w", err)
	}

	i.mu.Lock()
	i.resolved[version] = bin
	i.mu.Unlock()

	return bin, nil
}

func (i *Installer) lookupBuild(ctx context.Context, version string) (*buildInfo, error) {
	data, err := i.get(ctx, fmt.Sprintf("%s/%s/list.json", i.baseURL, i.platform))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solc release list: %w", err)
	}

	var list buildList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse solc release list: %w", err)
	}

	build, ok := lo.Find(list.Builds, func(b buildInfo) bool {
		return b.Version == version
	})
	if !ok {
		return nil, fmt.Errorf("solc %s is not available for %s", version, i.platform)
	}
	return &build, nil
}

func (i *Installer) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
