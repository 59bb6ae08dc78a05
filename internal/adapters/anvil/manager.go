package anvil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

const (
	DefaultAnvilPort = "8545"
	DefaultAnvilHost = "127.0.0.1"

	startupTimeout = 10 * time.Second
	stopTimeout    = 5 * time.Second
)

// Manager runs anvil nodes as detached processes tracked by PID files
type Manager struct {
	dir        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewManager creates a manager keeping PID and log files in the project data dir
func NewManager(cfg *config.RuntimeConfig, log *slog.Logger) *Manager {
	return newManager(filepath.Join(cfg.DataDir, "anvil"), log)
}

func newManager(dir string, log *slog.Logger) *Manager {
	return &Manager{
		dir:        dir,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        log.With("component", "AnvilManager"),
	}
}

// setFilePaths fills in defaults without touching preset paths
func (m *Manager) setFilePaths(instance *domain.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = "anvil"
	}
	if strings.TrimSpace(instance.Port) == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.dir, instance.Name+".pid")
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.dir, instance.Name+".log")
	}
}

func buildAnvilArgs(instance *domain.AnvilInstance) []string {
	host := instance.Host
	if host == "" {
		host = DefaultAnvilHost
	}
	args := []string{"--port", instance.Port, "--host", host}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	if instance.ForkURL != "" {
		args = append(args, "--fork-url", instance.ForkURL)
	}
	if instance.Mnemonic != "" {
		args = append(args, "--mnemonic", instance.Mnemonic)
	}
	if instance.Accounts > 0 {
		args = append(args, "--accounts", strconv.Itoa(instance.Accounts))
	}
	return args
}

func rpcURL(instance *domain.AnvilInstance) string {
	host := instance.Host
	if host == "" || host == "0.0.0.0" {
		host = DefaultAnvilHost
	}
	return "http://" + net.JoinHostPort(host, instance.Port)
}

// Start launches anvil and waits until its RPC endpoint answers
func (m *Manager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)
	if _, running := m.pid(instance); running {
		return fmt.Errorf("anvil '%s' is already running (PID file exists at %s)", instance.Name, instance.PidFile)
	}

	if err := os.MkdirAll(filepath.Dir(instance.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create anvil directory: %w", err)
	}
	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	args := buildAnvilArgs(instance)
	m.log.Debug("starting anvil", "name", instance.Name, "port", instance.Port, "fork", instance.ForkURL)

	// The node outlives this process, so it is not bound to ctx
	cmd := exec.Command("anvil", args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	if err := os.WriteFile(instance.PidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	if err := m.waitHealthy(ctx, instance); err != nil {
		return fmt.Errorf("anvil '%s' did not become ready, see %s: %w", instance.Name, instance.LogFile, err)
	}
	return nil
}

func (m *Manager) waitHealthy(ctx context.Context, instance *domain.AnvilInstance) error {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := m.chainID(ctx, instance); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stop terminates the node, killing it when SIGTERM is not honoured in time
func (m *Manager) Stop(_ context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)
	pid, running := m.pid(instance)
	if !running {
		_ = os.Remove(instance.PidFile)
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	deadline := time.Now().Add(stopTimeout)
	for processAlive(process) && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(process) {
		_ = process.Kill()
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the node runs and answers RPC
func (m *Manager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	m.setFilePaths(instance)
	status := &domain.AnvilStatus{
		RPCURL:  rpcURL(instance),
		LogFile: instance.LogFile,
	}

	pid, running := m.pid(instance)
	if !running {
		return status, nil
	}
	status.Running = true
	status.PID = pid

	chainID, err := m.chainID(ctx, instance)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	return status, nil
}

// StreamLogs follows the node log until ctx is done
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	m.setFilePaths(instance)
	if _, err := os.Stat(instance.LogFile); os.IsNotExist(err) {
		return fmt.Errorf("log file does not exist: %s", instance.LogFile)
	}

	cmd := exec.CommandContext(ctx, "tail", "-f", instance.LogFile)
	cmd.Stdout = writer
	cmd.Stderr = writer
	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to follow %s: %w", instance.LogFile, err)
	}
	return nil
}

// pid returns the recorded PID and whether that process is alive
func (m *Manager) pid(instance *domain.AnvilInstance) (int, bool) {
	data, err := os.ReadFile(instance.PidFile)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return pid, false
	}
	return pid, processAlive(process)
}

func processAlive(process *os.Process) bool {
	return process.Signal(syscall.Signal(0)) == nil
}

type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (m *Manager) chainID(ctx context.Context, instance *domain.AnvilInstance) (uint64, error) {
	var hexID string
	if err := m.call(ctx, instance, "eth_chainId", &hexID); err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(hexID, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain ID %q: %w", hexID, err)
	}
	return id, nil
}

func (m *Manager) call(ctx context.Context, instance *domain.AnvilInstance, method string, result any) error {
	body, err := json.Marshal(rpcRequest{Jsonrpc: "2.0", Method: method, Params: []interface{}{}, ID: 1})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL(instance), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d", httpResp.StatusCode)
	}

	var resp rpcResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("RPC error: %s", resp.Error.Message)
	}
	if len(resp.Result) == 0 {
		return errors.New("empty RPC result")
	}
	return json.Unmarshal(resp.Result, result)
}

var _ usecase.AnvilManager = (*Manager)(nil)
