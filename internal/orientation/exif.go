package orientation

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifParser reads the orientation tag from JPEG or TIFF data.
type ExifParser struct{}

// Orientation implements Parser. Data without an EXIF block is a parse
// failure, not a missing tag.
func (ExifParser) Orientation(r io.Reader) (int, bool, error) {
	x, err := exif.Decode(r)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return 0, false, err
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		if exif.IsTagNotPresentError(err) {
			return 0, false, nil
		}
		return 0, false, err
	}

	value, err := tag.Int(0)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
