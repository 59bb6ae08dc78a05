package blockchain

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/trebuchet-org/scriptkit/internal/domain"
)

// classify wraps an RPC error with the matching domain sentinel
func classify(err error, msg string) error {
	switch {
	case isRevert(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrTransactionReverted, msg, err)
	case isUnavailable(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrNetworkUnavailable, msg, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func isRevert(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "execution reverted") ||
		strings.Contains(msg, "vm exception") ||
		strings.Contains(msg, "revert")
}

func isUnavailable(err error) bool {
	var opErr *net.OpError
	var urlErr *url.Error
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) ||
		errors.As(err, &urlErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED)
}
