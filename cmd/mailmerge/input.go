package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mailmerge "github.com/alnah/go-mailmerge"
	"github.com/alnah/go-mailmerge/internal/config"
)

// Sentinel errors for input resolution.
var (
	ErrNoInput     = errors.New("no address list specified")
	ErrNoSender    = errors.New("no sender specified (use -s or set sender in config)")
	ErrReadInput   = errors.New("failed to read address list")
	ErrReadSender  = errors.New("failed to read sender")
	ErrTooManyArgs = errors.New("too many arguments")
	ErrBothStdin   = errors.New("address list and sender cannot both read stdin")
)

// stdinArg selects standard input as a source.
const stdinArg = "-"

// maxInputSize caps JSON read from files or stdin (32 MiB).
const maxInputSize = 32 << 20

// readSource resolves a source argument to bytes: "-" reads stdin, text
// starting with literal (after whitespace) is JSON itself, anything else
// is a file path. readErr tags read failures.
func readSource(arg string, literal byte, stdin io.Reader, readErr error) ([]byte, error) {
	if arg == stdinArg {
		data, err := readLimited(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w from stdin: %w", readErr, err)
		}
		return data, nil
	}

	if looksLikeJSON(arg, literal) {
		return []byte(arg), nil
	}

	f, err := os.Open(arg) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", readErr, arg, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", readErr, arg, err)
	}
	return data, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("input exceeds %d bytes", maxInputSize)
	}
	return data, nil
}

// looksLikeJSON reports whether s starts with the given JSON delimiter.
func looksLikeJSON(s string, delim byte) bool {
	s = strings.TrimLeft(s, " \t\r\n")
	return s != "" && s[0] == delim
}

// loadAddresses reads and decodes the recipient list.
func loadAddresses(arg string, stdin io.Reader) ([]mailmerge.Address, error) {
	data, err := readSource(arg, '[', stdin, ErrReadInput)
	if err != nil {
		return nil, err
	}
	addrs, err := mailmerge.DecodeAddresses(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mailmerge.ErrDecodeAddresses, err)
	}
	return addrs, nil
}

// loadSender reads and decodes the sender from the -s argument, or
// falls back to the sender in the config file.
func loadSender(arg string, fromConfig *config.AddressConfig, stdin io.Reader) (mailmerge.Address, error) {
	if arg == "" {
		if fromConfig == nil {
			return mailmerge.Address{}, ErrNoSender
		}
		return addressFromConfig(fromConfig), nil
	}

	data, err := readSource(arg, '{', stdin, ErrReadSender)
	if err != nil {
		return mailmerge.Address{}, err
	}
	sender, err := mailmerge.DecodeAddress(data)
	if err != nil {
		return mailmerge.Address{}, fmt.Errorf("%w: %w", mailmerge.ErrDecodeSender, err)
	}
	return sender, nil
}

// addressFromConfig converts a YAML address; empty optional fields stay absent.
func addressFromConfig(a *config.AddressConfig) mailmerge.Address {
	return mailmerge.Address{
		Name:     optionalString(a.Name),
		Address1: a.Address1,
		Address2: optionalString(a.Address2),
		City:     a.City,
		State:    optionalString(a.State),
		PostCode: a.PostCode,
		Country:  a.Country,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
