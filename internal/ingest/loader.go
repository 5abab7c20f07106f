package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/specialistvlad/erpindex/internal/fsutil"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
)

// ErrSourceUnreadable wraps every failure to open or read a source.
var ErrSourceUnreadable = errors.New("source unreadable")

// SourceExtension is the file extension picked up when a directory is loaded.
const SourceExtension = ".csv"

// SkippedRow describes a data row that was dropped.
type SkippedRow struct {
	Source string
	Line   int
	Reason string
	Err    error // cause; matches ErrUnknownInstitute for unrecognized tags
}

// Report summarizes a load.
type Report struct {
	Sources        []string
	Rows           int // data rows seen, header excluded
	Loaded         int
	Skipped        []SkippedRow
	SkippedEntries int // course or grade entries dropped from kept rows
}

// Loader turns delimited sources into a roster.
type Loader struct {
	opts      Options
	validator *rowValidator
}

// NewLoader creates a loader. Invalid options are reported by the Load
// methods, not here.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts, validator: newRowValidator()}
}

// LoadFile loads a single file, or every SourceExtension file under a
// directory in lexical path order, into one frozen roster.
func (l *Loader) LoadFile(ctx context.Context, path string) (*roster.Roster, *Report, error) {
	logger := ctxlog.FromContext(ctx)

	if err := l.opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid loader options: %w", err)
	}

	files, err := fsutil.ResolveSources(path, SourceExtension)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, errEmptySource)
	}
	logger.Debug("Resolved source files.", "path", path, "count", len(files))

	r := roster.New(0)
	report := &Report{}
	for _, file := range files {
		if err := l.loadFile(ctx, file, r, report); err != nil {
			return nil, nil, err
		}
	}
	r.Freeze()

	l.logSummary(ctx, report)
	return r, report, nil
}

func (l *Loader) loadFile(ctx context.Context, file string, r *roster.Roster, report *Report) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	return l.read(ctx, f, file, r, report)
}

// Load reads one source from src. name identifies the source in the report.
func (l *Loader) Load(ctx context.Context, src io.Reader, name string) (*roster.Roster, *Report, error) {
	if err := l.opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid loader options: %w", err)
	}

	r := roster.New(0)
	report := &Report{}
	if err := l.read(ctx, src, name, r, report); err != nil {
		return nil, nil, err
	}
	r.Freeze()

	l.logSummary(ctx, report)
	return r, report, nil
}

func (l *Loader) read(ctx context.Context, src io.Reader, name string, r *roster.Roster, report *Report) error {
	ctx = ctxlog.With(ctx, "source", name)
	logger := ctxlog.FromContext(ctx)
	report.Sources = append(report.Sources, name)

	cr := csv.NewReader(src)
	cr.Comma = l.opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header := l.opts.SkipHeader
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var line int
		var parseErr *csv.ParseError
		switch {
		case err == nil:
			line, _ = cr.FieldPos(0)
		case errors.As(err, &parseErr):
			line = parseErr.StartLine
		default:
			return fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, name, err)
		}

		if header {
			header = false
			continue
		}
		report.Rows++

		if parseErr != nil {
			skipRow(logger, report, name, line, parseErr.Err)
			continue
		}

		s, dropped, err := l.parseRow(fields)
		report.SkippedEntries += dropped
		if err != nil {
			skipRow(logger, report, name, line, err)
			continue
		}
		r.Append(s)
		report.Loaded++
	}
}

func skipRow(logger *slog.Logger, report *Report, name string, line int, err error) {
	logger.Debug("Skipping row.", "line", line, "reason", err)
	report.Skipped = append(report.Skipped, SkippedRow{Source: name, Line: line, Reason: err.Error(), Err: err})
}

func (l *Loader) logSummary(ctx context.Context, report *Report) {
	ctxlog.FromContext(ctx).Info("Students loaded.",
		"sources", len(report.Sources),
		"rows", report.Rows,
		"loaded", report.Loaded,
		"skipped_rows", len(report.Skipped),
		"skipped_entries", report.SkippedEntries,
	)
}

// parseRow builds a record from one row. dropped counts course entries that
// were discarded from an otherwise valid row.
func (l *Loader) parseRow(fields []string) (s student.Student, dropped int, err error) {
	if len(fields) != FieldCount {
		return nil, 0, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}

	row := rawRow{
		Institute:    strings.TrimSpace(fields[0]),
		Name:         strings.TrimSpace(fields[1]),
		Roll:         strings.TrimSpace(fields[2]),
		Branch:       strings.TrimSpace(fields[3]),
		StartingYear: strings.TrimSpace(fields[4]),
		Current:      strings.TrimSpace(fields[5]),
		Past:         strings.TrimSpace(fields[6]),
	}
	// The institute selects the variant, so it is decided before anything else.
	inst, err := student.ParseInstitute(row.Institute)
	if err != nil {
		return nil, 0, err
	}
	if err := l.validator.check(row); err != nil {
		return nil, 0, err
	}
	year, err := strconv.ParseUint(row.StartingYear, 10, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid starting year %q: %w", row.StartingYear, err)
	}

	if inst == student.IITDelhi {
		roll, err := strconv.ParseUint(row.Roll, 10, 0)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid IIT roll %q: %w", row.Roll, err)
		}
		rec := student.NewIIT(row.Name, uint(roll), row.Branch, uint(year))
		dropped = fillCourses(l, row, strconv.Atoi, rec.AddCurrentCourse, rec.AddPastCourse)
		return rec, dropped, nil
	}

	rec := student.NewIIIT(row.Name, row.Roll, row.Branch, uint(year))
	dropped = fillCourses(l, row, textCode, rec.AddCurrentCourse, rec.AddPastCourse)
	return rec, dropped, nil
}

func textCode(s string) (string, error) { return s, nil }

// fillCourses parses both course lists into the record through its typed
// mutators and returns how many entries were dropped.
func fillCourses[C student.Code](
	l *Loader,
	row rawRow,
	parseCode func(string) (C, error),
	addCurrent func(C),
	addPast func(C, int),
) (dropped int) {
	for _, tok := range l.splitList(row.Current) {
		code, err := parseCode(tok)
		if err != nil {
			dropped++
			continue
		}
		addCurrent(code)
	}

	pair := string(l.opts.PairSeparator)
	for _, tok := range l.splitList(row.Past) {
		parts := strings.Split(tok, pair)
		if len(parts) != 2 {
			dropped++
			continue
		}
		courseText := strings.TrimSpace(parts[0])
		if courseText == "" {
			dropped++
			continue
		}
		code, err := parseCode(courseText)
		if err != nil {
			dropped++
			continue
		}
		grade, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || !student.ValidGrade(grade) {
			dropped++
			continue
		}
		addPast(code, grade)
	}
	return dropped
}

// splitList splits a list field and drops blank items.
func (l *Loader) splitList(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, string(l.opts.ListSeparator))
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
