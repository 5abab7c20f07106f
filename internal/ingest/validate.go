package ingest

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// rawRow is one data row after splitting and trimming, before any field is
// interpreted.
type rawRow struct {
	Institute    string `csv:"institute"`
	Name         string `csv:"name" validate:"required"`
	Roll         string `csv:"roll"`
	Branch       string `csv:"branch"`
	StartingYear string `csv:"starting_year" validate:"required,number"`
	Current      string `csv:"current_courses"`
	Past         string `csv:"past_courses"`
}

const tagIITRoll = "iit_roll"

// rowValidator checks raw rows and renders failures as readable reasons.
type rowValidator struct {
	v     *govalidator.Validate
	trans ut.Translator
}

func newRowValidator() *rowValidator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Report fields by their column name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("csv")
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// IIT roll numbers are integers; IIIT ones are free text.
	v.RegisterStructValidation(func(sl govalidator.StructLevel) {
		row := sl.Current().Interface().(rawRow)
		if row.Institute == "IIT" && !isDigits(row.Roll) {
			sl.ReportError(row.Roll, "roll", "Roll", tagIITRoll, "")
		}
	}, rawRow{})
	_ = v.RegisterTranslation(tagIITRoll, trans,
		func(t ut.Translator) error {
			return t.Add(tagIITRoll, "{0} must be a non-negative integer for IIT records", true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, _ := t.T(tagIITRoll, fe.Field())
			return msg
		},
	)

	return &rowValidator{v: v, trans: trans}
}

// check returns nil for a valid row, or an error whose message lists every
// failing field.
func (rv *rowValidator) check(row rawRow) error {
	err := rv.v.Struct(row)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Translate(rv.trans))
	}
	slices.Sort(msgs)
	return errors.New(strings.Join(msgs, "; "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
