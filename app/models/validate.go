package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	// Report fields by their wire name so messages read "name is a required field".
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
	if err := validate.RegisterTranslation("slug", translator,
		func(t ut.Translator) error {
			return t.Add("slug", "{0} may only contain lower-case letters, digits and single dashes", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("slug", fe.Field())
			return msg
		},
	); err != nil {
		panic(err)
	}
}

// FieldErrors converts a validation error into a map of field name to a
// human readable message. Errors that did not come from the validator are
// returned under the empty key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fe.Translate(translator)
	}
	return out
}

// IsSlug reports whether s is usable as a post slug.
func IsSlug(s string) bool {
	return len(s) <= 100 && slugPattern.MatchString(s)
}
