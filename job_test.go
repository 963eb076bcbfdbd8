package mailmerge

import (
	"errors"
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewJob - Defaults
// ---------------------------------------------------------------------------

func TestNewJob(t *testing.T) {
	t.Parallel()

	job := NewJob(Address{City: "Town"}, []Address{{City: "London"}})

	if job.Width != 162 || job.Height != 114 {
		t.Errorf("size = %dx%d, want 162x114", job.Width, job.Height)
	}
	if job.Output != "addresses.pdf" {
		t.Errorf("Output = %q, want addresses.pdf", job.Output)
	}
	if job.HTMLOnly {
		t.Error("HTMLOnly = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestJob_Validate - Address count and dimension bounds
// ---------------------------------------------------------------------------

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	one := []Address{{City: "London"}}

	tests := []struct {
		name    string
		job     *Job
		wantErr error
	}{
		{"defaults", NewJob(Address{}, one), nil},
		{"minimum size", &Job{Addresses: one, Width: MinDimensionMM, Height: MinDimensionMM}, nil},
		{"maximum size", &Job{Addresses: one, Width: MaxDimensionMM, Height: MaxDimensionMM}, nil},
		{"no addresses", NewJob(Address{}, nil), ErrNoAddresses},
		{"empty addresses", NewJob(Address{}, []Address{}), ErrNoAddresses},
		{"zero width", &Job{Addresses: one, Width: 0, Height: 114}, ErrInvalidDimension},
		{"negative height", &Job{Addresses: one, Width: 162, Height: -1}, ErrInvalidDimension},
		{"too large", &Job{Addresses: one, Width: MaxDimensionMM + 1, Height: 114}, ErrInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.job.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSize - Landscape normalization and unit conversion
// ---------------------------------------------------------------------------

func TestPageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		want          PageSize
		wantCSS       string
	}{
		{"default envelope", 162, 114, PageSize{162, 114}, "162mm 114mm"},
		{"portrait input becomes landscape", 114, 162, PageSize{162, 114}, "162mm 114mm"},
		{"square", 100, 100, PageSize{100, 100}, "100mm 100mm"},
		{"DL envelope", 220, 110, PageSize{220, 110}, "220mm 110mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := &Job{Width: tt.width, Height: tt.height}
			got := job.PageSize()
			if got != tt.want {
				t.Errorf("PageSize() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.wantCSS {
				t.Errorf("String() = %q, want %q", got.String(), tt.wantCSS)
			}
		})
	}

	t.Run("inches", func(t *testing.T) {
		t.Parallel()

		p := PageSize{WidthMM: 254, HeightMM: 127}
		if math.Abs(p.WidthInches()-10) > 1e-9 || math.Abs(p.HeightInches()-5) > 1e-9 {
			t.Errorf("inches = %v x %v, want 10 x 5", p.WidthInches(), p.HeightInches())
		}
	})
}
