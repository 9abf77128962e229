package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// resourceIDPattern matches the item and currency ids used by the building catalog
var resourceIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validator checks a loaded Config against its struct tags plus the homestead rules
// registered in NewValidator
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers:
//   - resource_id: catalog-style ids for starting items and currencies
//   - daemon autosave interval no shorter than one tick
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("resource_id", func(fl validator.FieldLevel) bool {
		return resourceIDPattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(validateDaemon, DaemonConfig{})
	return &Validator{validate: v}
}

func validateDaemon(sl validator.StructLevel) {
	d := sl.Current().Interface().(DaemonConfig)
	if d.TickRate <= 0 || d.AutosaveEvery <= 0 {
		return
	}
	tick := time.Duration(float64(time.Second) / d.TickRate)
	if d.AutosaveEvery < tick {
		sl.ReportError(d.AutosaveEvery, "AutosaveEvery", "autosave_every", "autosave_tick", tick.String())
	}
}

// Validate runs every rule and reports all failing settings at once
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return describe(err)
	}
	return nil
}

func describe(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	lines := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		line := fmt.Sprintf("setting '%s' failed validation: %s (value: '%v')", e.Field(), e.Tag(), e.Value())
		if e.Param() != "" {
			line += fmt.Sprintf(" [%s]", e.Param())
		}
		lines = append(lines, line)
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// ValidateConfig validates the whole homestead configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
