package classroom

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Cursor is the opaque resume point of a paginated listing: the monotonic
// sequence value of a record plus its ID. On the wire it is a single
// comma-joined string, e.g. "1612345,60ddf00c2a".
type Cursor struct {
	Seq int64
	ID  string
}

func (c Cursor) String() string {
	return strconv.FormatInt(c.Seq, 10) + "," + c.ID
}

// ParseCursor splits on the first comma; the left part is the numeric
// sequence token, the right part the record ID.
func ParseCursor(s string) (Cursor, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, errors.Errorf("malformed cursor %q", s)
	}
	seq, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, errors.Wrapf(err, "malformed cursor %q", s)
	}
	return Cursor{Seq: seq, ID: parts[1]}, nil
}

// Before reports whether c sorts before other in the listing order
// (descending by sequence, ties broken by descending ID).
func (c Cursor) Before(other Cursor) bool {
	if c.Seq != other.Seq {
		return c.Seq > other.Seq
	}
	return c.ID > other.ID
}

func (c Classroom) cursor() Cursor {
	return Cursor{Seq: c.Seq, ID: c.ID}
}
