package main

import (
	"context"
	"errors"
	"os"

	mailmerge "github.com/alnah/go-mailmerge"
	"github.com/alnah/go-mailmerge/internal/config"
)

// Exit codes for the mailmerge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input data, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors and render timeouts
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mailmerge.ErrBrowserConnect) ||
		errors.Is(err, mailmerge.ErrPageCreate) ||
		errors.Is(err, mailmerge.ErrPageLoad) ||
		errors.Is(err, mailmerge.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadSender) ||
		errors.Is(err, mailmerge.ErrWritePDF) ||
		errors.Is(err, mailmerge.ErrWriteHTML) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoSender) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrBothStdin) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mailmerge.ErrDecode) ||
		errors.Is(err, mailmerge.ErrDecodeSender) ||
		errors.Is(err, mailmerge.ErrDecodeAddresses) ||
		errors.Is(err, mailmerge.ErrNoAddresses) ||
		errors.Is(err, mailmerge.ErrInvalidDimension) ||
		errors.Is(err, mailmerge.ErrUnknownEngine) ||
		errors.Is(err, mailmerge.ErrTemplateParse) ||
		errors.Is(err, mailmerge.ErrStyleNotFound) ||
		errors.Is(err, mailmerge.ErrTemplateNotFound) ||
		errors.Is(err, mailmerge.ErrInvalidAssetPath) ||
		errors.Is(err, mailmerge.ErrInvalidAssetName) {
		return ExitUsage
	}

	return ExitGeneral
}
