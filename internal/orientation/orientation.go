// Package orientation reads the EXIF orientation of an image file and maps
// it to the rotation, in degrees, needed to display the image upright.
package orientation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go-imagine-keys/internal/metrics"
	"go-imagine-keys/pkg/logger"

	"go.uber.org/zap"
)

// ErrFileNotFound is returned when the path is not an existing, readable file.
var ErrFileNotFound = errors.New("file not found")

// Kind tells how a Result was obtained.
type Kind int

const (
	// Angle means an orientation tag was read; Degrees holds the rotation.
	Angle Kind = iota
	// NoTag means the metadata was read but carries no orientation tag.
	NoTag
	// ParseFailed means the metadata could not be decoded. Err holds the cause.
	ParseFailed
)

func (k Kind) String() string {
	switch k {
	case Angle:
		return "angle"
	case NoTag:
		return "no_tag"
	case ParseFailed:
		return "parse_failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of reading an orientation.
type Result struct {
	Kind    Kind
	Degrees int
	Err     error
}

// Angle returns the rotation to apply. It is 0 unless an orientation tag was read.
func (r Result) Angle() int {
	if r.Kind != Angle {
		return 0
	}
	return r.Degrees
}

// Parser extracts the raw orientation tag value from image data.
// present is false when the metadata has no orientation tag.
type Parser interface {
	Orientation(r io.Reader) (value int, present bool, err error)
}

// Reader reads orientations through a Parser.
type Reader struct {
	parser Parser
}

// NewReader returns a Reader using p.
func NewReader(p Parser) *Reader {
	return &Reader{parser: p}
}

var defaultReader = NewReader(ExifParser{})

// Read reads the orientation of the file at path with the EXIF parser.
func Read(path string) (Result, error) {
	return defaultReader.Read(path)
}

// Read opens path and reads its orientation. Only a missing or unreadable
// file is an error; metadata problems are reported in the Result.
func (rd *Reader) Read(path string) (Result, error) {
	f, err := openFile(path)
	if err != nil {
		metrics.OrientationReadsTotal.WithLabelValues("not_found").Inc()
		return Result{}, err
	}
	defer f.Close()

	value, present, err := rd.parser.Orientation(f)
	var res Result
	switch {
	case err != nil:
		res = Result{Kind: ParseFailed, Err: err}
		logger.Warn("failed to parse image metadata",
			zap.String("path", path),
			zap.Error(err))
	case !present:
		res = Result{Kind: NoTag}
	default:
		res = Result{Kind: Angle, Degrees: Degrees(value)}
	}

	metrics.OrientationReadsTotal.WithLabelValues(res.Kind.String()).Inc()
	return res, nil
}

// Degrees maps an EXIF orientation value to a rotation angle.
func Degrees(tag int) int {
	switch tag {
	case 3:
		return 180
	case 6:
		return -90
	case 8:
		return 90
	default:
		return 0
	}
}

func openFile(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	return f, nil
}
