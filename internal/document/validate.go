package document

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("variant", func(fl validator.FieldLevel) bool {
			return slices.Contains(VariantNames(), fl.Field().String())
		})

		_ = v.RegisterValidation("format", func(fl validator.FieldLevel) bool {
			return slices.Contains(catalog.FormatNames(), fl.Field().String())
		})

		_ = v.RegisterValidation("club", func(fl validator.FieldLevel) bool {
			return slices.Contains(catalog.ClubKeys(), fl.Field().String())
		})

		_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
			return slices.Contains(catalog.SeasonKeys(), fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks every record and setting of a snapshot.
func Validate(s *Snapshot) error {
	if s == nil {
		return sverrors.NewValidationError("snapshot", "snapshot is nil", nil)
	}

	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError(err)
	}

	if len(s.Data.UpNext.Matches) < s.Data.UpNext.NumMatches {
		return sverrors.NewValidationError("data.upnext.matches",
			fmt.Sprintf("has %d entries, numMatches is %d", len(s.Data.UpNext.Matches), s.Data.UpNext.NumMatches), nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := fieldPath(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return sverrors.NewValidationError(field, msg, err)
	}

	return sverrors.NewValidationError("snapshot", err.Error(), err)
}

// fieldPath drops the root struct name from the namespace, e.g.
// "Snapshot.data.match.color1" becomes "data.match.color1".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return strings.ReplaceAll(ns, "ViewSettings.", "")
}
