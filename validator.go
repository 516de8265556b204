package requirements

import (
	"strings"

	"github.com/kenshaw/requirements/message"
)

// minimumLengthForDiff is the length below which a value is short enough to
// show without a diff.
const minimumLengthForDiff = 10

// Validators creates validators that share a configuration. The
// configuration is fixed once New returns.
type Validators struct {
	cfg         message.Config
	allowDiff   bool
	allowLegend bool
}

// New creates a factory of validators.
func New(opts ...Option) *Validators {
	v := &Validators{
		cfg:         *message.NewDefaultConfig(),
		allowDiff:   true,
		allowLegend: true,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Diff returns the sections that explain how actual differs from expected,
// using the factory's configuration.
func (v *Validators) Diff(actual, expected any, actualName, expectedName string) ([]message.Section, error) {
	cfg := v.cfg
	return computeDiff(&cfg, actual, expected, actualName, expectedName, v.allowDiff, v.allowLegend)
}

// RequireThat creates a validator for value, which is referred to as name in
// failure messages.
func (v *Validators) RequireThat(value any, name string) *Validator {
	return &Validator{
		factory: v,
		value:   value,
		name:    name,
	}
}

// Validator checks a single value.
type Validator struct {
	factory *Validators
	value   any
	name    string
}

// Error is a failed validation.
type Error struct {
	// Message is the complete failure message.
	Message string
	// Sections are the context sections included in Message.
	Sections []message.Section
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return e.Message
}

// IsEqualTo returns an *Error if the value is not equal to expected.
func (v *Validator) IsEqualTo(expected any) error {
	return v.isEqualTo(expected, "", false)
}

// IsEqualToNamed returns an *Error if the value is not equal to expected,
// which is referred to as name in failure messages.
func (v *Validator) IsEqualToNamed(expected any, name string) error {
	return v.isEqualTo(expected, name, true)
}

func (v *Validator) isEqualTo(expected any, expectedName string, named bool) error {
	if err := message.CheckName("name", v.name); err != nil {
		return err
	}
	if named {
		if err := message.CheckName("expectedName", expectedName); err != nil {
			return err
		}
	}
	cfg := &v.factory.cfg
	if cfg.Equals(v.value, expected) {
		return nil
	}
	if v.shortValue(v.value) || v.shortValue(expected) {
		// "actual" must be equal to 5.
		// actual: 6
		nameOrValue := cfg.Text(expected)
		if named {
			nameOrValue = quoteName(expectedName)
		}
		section := message.ContextSection{{Key: v.name, Value: cfg.Text(v.value)}}
		if named {
			section = append(section, message.Entry{Key: expectedName, Value: cfg.Text(expected)})
		}
		return newError(quoteName(v.name)+" must be equal to "+nameOrValue+".", []message.Section{section})
	}
	if !named {
		expectedName = "expected"
	}
	sections, err := v.factory.Diff(v.value, expected, v.name, expectedName)
	if err != nil {
		return err
	}
	return newError(quoteName(v.name)+" had an unexpected value.\n", sections)
}

// IsNotEqualTo returns an *Error if the value is equal to unwanted.
func (v *Validator) IsNotEqualTo(unwanted any) error {
	if err := message.CheckName("name", v.name); err != nil {
		return err
	}
	cfg := &v.factory.cfg
	if !cfg.Equals(v.value, unwanted) {
		return nil
	}
	section := message.ContextSection{{Key: v.name, Value: cfg.Text(v.value)}}
	return newError(quoteName(v.name)+" may not be equal to "+cfg.Text(unwanted)+".", []message.Section{section})
}

// shortValue reports whether value is short and simple enough to show
// without a diff.
func (v *Validator) shortValue(value any) bool {
	s := v.factory.cfg.Text(value)
	return len(s) < minimumLengthForDiff && !strings.Contains(s, "\n")
}

func newError(summary string, sections []message.Section) *Error {
	return &Error{
		Message:  summary + "\n" + message.FormatAligned(sections),
		Sections: sections,
	}
}

// quoteName quotes name unless it refers to a member, such as "user.name".
func quoteName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return `"` + name + `"`
}
