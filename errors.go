package epidemic

import "github.com/pkg/errors"

// ErrInvalidConfig is the single signal surfaced for any malformed
// configuration: zero population, empty family size tables, negative
// probabilities, and so on. The wrapped message names the offending field.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// InvalidFloatFieldError formats "invalid <field> <value>, <reason>".
	InvalidFloatFieldError = "invalid %s %f, %s"
	// InvalidIntFieldError formats "invalid <field> <value>, <reason>".
	InvalidIntFieldError = "invalid %s %d, %s"
)

// Test-assertion message formats, following errors.go's
// UnequalIntParameterError/UnequalStringParameterError idiom.
const (
	UnequalIntFieldError    = "expected %s %d, instead got %d"
	UnequalFloatFieldError  = "expected %s %f, instead got %f"
	UnequalStringFieldError = "expected %s %s, instead got %s"

	UnexpectedErrorWhileError = "encountered error while %s: %s"
	ExpectedErrorWhileError   = "expected an error while %s, instead got %s"
)

// configErrorf wraps ErrInvalidConfig with a field-specific reason,
// following the teacher's errors.Wrapf(err, "cannot create %s model", ...)
// idiom, generalized to one taxonomy instead of one message per model.
func configErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
