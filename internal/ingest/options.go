package ingest

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// FieldCount is the number of fields in every data row.
const FieldCount = 7

// Options controls how rows are split.
type Options struct {
	Delimiter     rune // field delimiter
	ListSeparator rune // separates items inside the two course fields
	PairSeparator rune // separates course and grade inside a past-course item
	SkipHeader    bool // the first row of each source is a header
}

// DefaultOptions matches the stock export format: comma-separated fields,
// semicolon-separated lists and course:grade pairs, with a header row.
func DefaultOptions() Options {
	return Options{
		Delimiter:     ',',
		ListSeparator: ';',
		PairSeparator: ':',
		SkipHeader:    true,
	}
}

// Validate checks that the three separators are usable and distinct.
func (o Options) Validate() error {
	seps := []struct {
		name string
		r    rune
	}{
		{"delimiter", o.Delimiter},
		{"list separator", o.ListSeparator},
		{"pair separator", o.PairSeparator},
	}
	seen := make(map[rune]string, len(seps))
	for _, s := range seps {
		switch s.r {
		case 0, '\r', '\n', '"', utf8.RuneError:
			return fmt.Errorf("invalid %s %q", s.name, s.r)
		}
		if other, dup := seen[s.r]; dup {
			return fmt.Errorf("%s and %s must differ, both are %q", other, s.name, s.r)
		}
		seen[s.r] = s.name
	}
	return nil
}

var errEmptySource = errors.New("no source files found")
