package mailmerge

import "errors"

// Sentinel errors for library operations.
var (
	// Decoding errors.
	ErrDecode          = errors.New("invalid address JSON")
	ErrDecodeSender    = errors.New("failed to parse sender address")
	ErrDecodeAddresses = errors.New("failed to parse address list")
	ErrMissingField    = errors.New("missing required field")

	// Job validation errors.
	ErrNoAddresses      = errors.New("address list cannot be empty")
	ErrInvalidDimension = errors.New("invalid page dimension")

	// Template errors.
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")

	// Rendering engine errors.
	ErrUnknownEngine  = errors.New("unknown rendering engine")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Output errors.
	ErrWritePDF  = errors.New("failed to write PDF file")
	ErrWriteHTML = errors.New("failed to write HTML file")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidAssetName = errors.New("invalid asset name")
)
