package unsquash

import (
	"fmt"
	"strings"
)

// Request describes a single extraction: which image to unpack, where to
// put the result, and how the tool should behave while doing it.
//
// A Request is a plain value — construct it with NewRequest so that
// validation happens up front, before any process interaction. Requests are
// not mutated by the package and may be reused across calls.
type Request struct {
	// SourceImage is the path to the SquashFS image to extract.
	SourceImage string

	// DestDir is the directory the image is extracted into. It is created
	// (including parents) before the tool is invoked if it does not exist.
	DestDir string

	// Threads limits the number of processors unsquashfs may use. Zero
	// means "unset": no flag is passed and the tool applies its own
	// default, typically the host's core count. The wrapper never injects
	// a default of its own.
	Threads int

	// Overwrite passes the tool's force flag, allowing it to write into an
	// existing destination. When false the flag is omitted and the tool's
	// native collision behavior applies unmodified.
	Overwrite bool
}

// Option customizes a Request during construction.
type Option func(*Request) error

// WithThreads limits extraction to n processors. n must be positive;
// zero or negative values fail request construction.
func WithThreads(n int) Option {
	return func(r *Request) error {
		if n <= 0 {
			return fmt.Errorf("%w: thread limit must be positive, got %d", ErrInvalidRequest, n)
		}
		r.Threads = n
		return nil
	}
}

// WithOverwrite allows unsquashfs to write into an existing destination
// directory.
func WithOverwrite() Option {
	return func(r *Request) error {
		r.Overwrite = true
		return nil
	}
}

// NewRequest builds a validated Request for extracting source into dest.
// Empty or whitespace-only paths and non-positive thread limits are
// rejected here, before any tool lookup or process spawn.
func NewRequest(source, dest string, opts ...Option) (Request, error) {
	req := Request{
		SourceImage: source,
		DestDir:     dest,
	}
	for _, opt := range opts {
		if err := opt(&req); err != nil {
			return Request{}, err
		}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate reports whether the Request is well formed. It is called by
// NewRequest and again by Extractor.Extract, so hand-built Request literals
// get the same checks as ones built through the constructor.
func (r Request) Validate() error {
	if strings.TrimSpace(r.SourceImage) == "" {
		return fmt.Errorf("%w: source image path is empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.DestDir) == "" {
		return fmt.Errorf("%w: destination directory is empty", ErrInvalidRequest)
	}
	if r.Threads < 0 {
		return fmt.Errorf("%w: thread limit must be positive, got %d", ErrInvalidRequest, r.Threads)
	}
	return nil
}
