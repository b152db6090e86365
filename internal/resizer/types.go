package resizer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"downsize/pkg/imgutil"
)

const (
	DefaultMaxWidth  = 1000
	DefaultMaxHeight = 800
	DefaultQuality   = 85
)

var (
	// ErrDirectoryNotFound aborts a run before any file is touched.
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrInvalidOptions    = errors.New("invalid options")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotRegularFile    = errors.New("not a regular file")
)

// Options is the job configuration. It is not modified during a run.
type Options struct {
	MaxWidth  int
	MaxHeight int
	// Quality applies to JPEG output only. The JPEG encoder always writes
	// standard Huffman tables; there is no optimized-table mode.
	Quality int
	DryRun  bool
	Logger  zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
		Logger:    zerolog.Nop(),
	}
}

func (o Options) Validate() error {
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("%w: max size must be positive, got %dx%d", ErrInvalidOptions, o.MaxWidth, o.MaxHeight)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("%w: quality must be within 1-100, got %d", ErrInvalidOptions, o.Quality)
	}
	return nil
}

type Status int

const (
	StatusFailed Status = iota
	StatusSkipped
	StatusResized
)

func (s Status) String() string {
	switch s {
	case StatusResized:
		return "resized"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result is the outcome for one candidate file.
type Result struct {
	Name   string
	Path   string
	Status Status
	Err    error
	Format imgutil.Kind

	Width     int
	Height    int
	NewWidth  int
	NewHeight int

	BytesBefore int64
	BytesAfter  int64

	// DroppedMetadata names the metadata blocks the re-encode discards.
	DroppedMetadata []string
	DryRun          bool
}

// Line renders the human-readable status line for the result.
func (r Result) Line() string {
	switch r.Status {
	case StatusResized:
		if r.DryRun {
			return fmt.Sprintf("Would resize: %s (%dx%d -> %dx%d)", r.Name, r.Width, r.Height, r.NewWidth, r.NewHeight)
		}
		return "Resized: " + r.Name
	case StatusSkipped:
		return "Skipped (already within size limits): " + r.Name
	default:
		return fmt.Sprintf("Error processing %s: %v", r.Name, r.Err)
	}
}

type Summary struct {
	Total           int
	Resized         int
	Skipped         int
	Failed          int
	MetadataDropped int
	BytesSaved      int64
}

func (s *Summary) add(res Result) {
	s.Total++
	switch res.Status {
	case StatusResized:
		s.Resized++
		if !res.DryRun {
			s.BytesSaved += res.BytesBefore - res.BytesAfter
		}
		if len(res.DroppedMetadata) > 0 {
			s.MetadataDropped++
		}
	case StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// ProgressUpdate is sent once with the candidate count and once per finished file.
type ProgressUpdate struct {
	TotalDelta int
	Result     *Result
}
