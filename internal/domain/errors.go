package domain

import (
	"errors"
)

// Sentinel errors for domain operations. Adapters and use cases wrap these
// with context; callers match them with errors.Is.
var (
	// ErrIndexOutOfRange is returned when a dev account index does not exist
	ErrIndexOutOfRange = errors.New("account index out of range")

	// ErrCredentialNotFound is returned when no keystore entry exists for an id
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrInvalidAccountID is returned for keystore ids that are not plain file names
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrMissingPrivateKey is returned when a live network needs wallets.from_key and it is unset
	ErrMissingPrivateKey = errors.New("missing private key")

	// ErrUnknownContract is returned for names absent from the contract registry
	ErrUnknownContract = errors.New("unknown contract")

	// ErrMissingContractAddress is returned when a live network has no address configured for a contract
	ErrMissingContractAddress = errors.New("missing contract address")

	// ErrTransactionReverted is returned when a transaction reverts during estimation or execution
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNetworkUnavailable is returned when the RPC endpoint cannot be reached
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrTimeout is returned when a transaction is not included before the receipt deadline
	ErrTimeout = errors.New("timeout")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrArtifactNotFound is returned when a compiled artifact is missing from the build directory
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrCompilationFailed is returned when solc reports errors
	ErrCompilationFailed = errors.New("compilation failed")
)

// CompilerError is a single error or warning reported by solc
type CompilerError struct {
	Severity         string `json:"severity"`
	Type             string `json:"type"`
	Message          string `json:"message"`
	FormattedMessage string `json:"formattedMessage"`
}

// CompilationErr collects the error-severity diagnostics of a failed compile
type CompilationErr struct {
	Errors []CompilerError
}

func (e CompilationErr) Error() string {
	if len(e.Errors) == 0 {
		return ErrCompilationFailed.Error()
	}
	msg := e.Errors[0].FormattedMessage
	if msg == "" {
		msg = e.Errors[0].Message
	}
	if len(e.Errors) > 1 {
		return ErrCompilationFailed.Error() + ": " + msg + " (and more)"
	}
	return ErrCompilationFailed.Error() + ": " + msg
}

func (e CompilationErr) Unwrap() error {
	return ErrCompilationFailed
}
