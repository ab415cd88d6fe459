package config

import (
	"fmt"
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

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("output_format", func(fl validator.FieldLevel) bool {
			_, err := catalog.LookupFormat(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks a configuration and reports the first failing field.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return sverrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return sverrors.NewValidationError(field, msg, err)
	}

	return sverrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.Server.MetricsPath" into "server.metricspath".
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return strings.ToLower(ns)
}
