package ipv

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Inputs holds one reconciliation's market snapshot. Rate and net carry are
// annualized continuously-compounded decimals (0.03 = 3%); the option pair is
// optional but must be quoted together, on the same strike and expiry as the
// forward being checked.
type Inputs struct {
	Spot           float64  `yaml:"spot" json:"spot" validate:"gt=0"`
	Rate           float64  `yaml:"rate" json:"rate"`
	NetCarry       float64  `yaml:"net_carry" json:"net_carry"`
	TimeToMaturity float64  `yaml:"ttm_years" json:"ttm_years" validate:"gt=0"`
	Strike         float64  `yaml:"strike" json:"strike" validate:"gt=0"`
	Call           *float64 `yaml:"call,omitempty" json:"call,omitempty" validate:"omitempty,gte=0"`
	Put            *float64 `yaml:"put,omitempty" json:"put,omitempty" validate:"omitempty,gte=0"`
}

// HasOptions reports whether the optional parity leg is present.
func (in Inputs) HasOptions() bool {
	return in.Call != nil && in.Put != nil
}

// Validate checks the snapshot before any math runs. Violations are caller
// errors, not reconciliation findings.
func (in Inputs) Validate() error {
	if (in.Call == nil) != (in.Put == nil) {
		return errors.New("provide both call and put (same K,T), or neither")
	}

	validate := validator.New()
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.New(describeFieldError(fieldErrs[0]))
		}
		return fmt.Errorf("invalid inputs: %w", err)
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Spot":
		return "spot must be > 0"
	case "Strike":
		return "strike must be > 0"
	case "TimeToMaturity":
		return "T must be > 0"
	case "Call":
		return "call must be >= 0"
	case "Put":
		return "put must be >= 0"
	default:
		return fe.Error()
	}
}
