package student

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInstitute is returned by ParseInstitute for tags outside the
// recognized set.
var ErrUnknownInstitute = errors.New("unknown institute")

// Institute identifies which concrete variant a record was built as.
type Institute int

const (
	// IIITDelhi records carry text roll numbers and text course codes.
	IIITDelhi Institute = iota + 1
	// IITDelhi records carry integer roll numbers and integer course codes.
	IITDelhi
)

// String returns the literal tag used for the institute in source files.
func (i Institute) String() string {
	switch i {
	case IIITDelhi:
		return "IIIT"
	case IITDelhi:
		return "IIT"
	default:
		return fmt.Sprintf("Institute(%d)", int(i))
	}
}

// ParseInstitute maps a source tag to its Institute. Matching is exact after
// trimming surrounding whitespace.
func ParseInstitute(tag string) (Institute, error) {
	switch strings.TrimSpace(tag) {
	case "IIIT":
		return IIITDelhi, nil
	case "IIT":
		return IITDelhi, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInstitute, tag)
	}
}
