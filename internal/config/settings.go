package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/erpindex/internal/ingest"
	"github.com/specialistvlad/erpindex/internal/query"
)

// Settings is the merged configuration used to start the application.
type Settings struct {
	Source SourceSettings
	Query  QuerySettings
	Log    LogSettings
}

// SourceSettings describes where student records come from and how rows
// are split.
type SourceSettings struct {
	Path          string
	Delimiter     string `validate:"len=1"`
	ListSeparator string `validate:"len=1"`
	PairSeparator string `validate:"len=1"`
	SkipHeader    bool
}

type QuerySettings struct {
	DefaultThreshold int `validate:"min=0,max=10"`
}

type LogSettings struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=text json"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	opts := ingest.DefaultOptions()
	return Settings{
		Source: SourceSettings{
			Delimiter:     string(opts.Delimiter),
			ListSeparator: string(opts.ListSeparator),
			PairSeparator: string(opts.PairSeparator),
			SkipHeader:    opts.SkipHeader,
		},
		Query: QuerySettings{DefaultThreshold: query.DefaultThreshold},
		Log:   LogSettings{Level: "info", Format: "text"},
	}
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field in one error. The source path is not
// checked here because it may still come from a positional argument.
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
	}
	if err := s.IngestOptions().Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// IngestOptions converts the source block into loader options. Call it on
// validated settings; an empty separator becomes the zero rune.
func (s Settings) IngestOptions() ingest.Options {
	return ingest.Options{
		Delimiter:     firstRune(s.Source.Delimiter),
		ListSeparator: firstRune(s.Source.ListSeparator),
		PairSeparator: firstRune(s.Source.PairSeparator),
		SkipHeader:    s.Source.SkipHeader,
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func describe(fe validator.FieldError) string {
	name := strings.ToLower(fe.StructNamespace())
	switch fe.Tag() {
	case "len":
		return fmt.Sprintf("%s must be a single character, got %q", name, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be between 0 and 10, got %v", name, fe.Value())
	default:
		return fmt.Sprintf("%s failed the %q check", name, fe.Tag())
	}
}
