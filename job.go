package mailmerge

import "fmt"

// Default job values, matching a C6 envelope.
const (
	DefaultOutput   = "addresses.pdf"
	DefaultWidthMM  = 162
	DefaultHeightMM = 114
)

// Page dimension bounds in millimeters.
const (
	MinDimensionMM = 10
	MaxDimensionMM = 1000
)

// mmPerInch converts millimeters to the inches Chrome expects.
const mmPerInch = 25.4

// Job is a fully resolved render request: one sender, the recipients in
// page order, and the page geometry.
type Job struct {
	Sender    Address
	Addresses []Address
	Width     int // mm
	Height    int // mm
	Output    string

	// HTMLOnly skips PDF generation; Result.PDF stays nil.
	HTMLOnly bool
}

// NewJob returns a Job with default page size and output path.
func NewJob(sender Address, addresses []Address) *Job {
	return &Job{
		Sender:    sender,
		Addresses: addresses,
		Width:     DefaultWidthMM,
		Height:    DefaultHeightMM,
		Output:    DefaultOutput,
	}
}

// Validate checks that the job can produce a meaningful document.
func (j *Job) Validate() error {
	if len(j.Addresses) == 0 {
		return ErrNoAddresses
	}
	if err := validateDimension("width", j.Width); err != nil {
		return err
	}
	return validateDimension("height", j.Height)
}

// PageSize returns the landscape page size for the job.
func (j *Job) PageSize() PageSize {
	return PageSize{WidthMM: j.Width, HeightMM: j.Height}.Landscape()
}

func validateDimension(field string, mm int) error {
	if mm < MinDimensionMM || mm > MaxDimensionMM {
		return fmt.Errorf("%w: %s %dmm (must be between %d and %d)",
			ErrInvalidDimension, field, mm, MinDimensionMM, MaxDimensionMM)
	}
	return nil
}

// PageSize is a physical page size in millimeters.
type PageSize struct {
	WidthMM  int
	HeightMM int
}

// Landscape returns the size with the longer edge horizontal.
func (p PageSize) Landscape() PageSize {
	if p.HeightMM > p.WidthMM {
		return PageSize{WidthMM: p.HeightMM, HeightMM: p.WidthMM}
	}
	return p
}

// WidthInches returns the page width in inches.
func (p PageSize) WidthInches() float64 {
	return float64(p.WidthMM) / mmPerInch
}

// HeightInches returns the page height in inches.
func (p PageSize) HeightInches() float64 {
	return float64(p.HeightMM) / mmPerInch
}

// String formats the size as CSS page size, e.g. "162mm 114mm".
func (p PageSize) String() string {
	return fmt.Sprintf("%dmm %dmm", p.WidthMM, p.HeightMM)
}
