package render

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed)
	labelStyle   = color.New(color.Faint)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	addressStyle = color.New(color.FgWhite, color.Bold)
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warningStyle.Sprintf("⚠️  %s", lastCause(message))
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	msg := lastCause(message)

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return errorStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✅ %s", message)
}

// Title capitalizes every word of s
func Title(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

// lastCause extracts the innermost message of a wrapped error chain
func lastCause(message string) string {
	parts := strings.Split(message, ": ")
	return parts[len(parts)-1]
}

// FormatEther renders a wei amount in ether with up to 6 decimals
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	s := strings.TrimRight(ether.Text('f', 6), "0")
	return strings.TrimSuffix(s, ".") + " ETH"
}

// FormatScaled formats a fixed-point value with the given number of decimals
func FormatScaled(value *big.Int, decimals uint8) string {
	if value == nil {
		return "-"
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	f := new(big.Float).Quo(new(big.Float).SetInt(value), new(big.Float).SetInt(scale))
	s := f.Text('f', int(decimals))
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// relativePath returns path relative to the working directory when possible
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}
