package install

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agoraforum/agora/config"

	"github.com/go-playground/validator/v10"
	"github.com/ztrue/tracerr"
)

var (
	validate = validator.New()

	// exact contracts, other implementations must match bit-for-bit
	prefixRegexp   = regexp.MustCompile(`^[A-Za-z0-9_]{0,10}$`)
	usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func init() {
	if err := validate.RegisterValidation("dbprefix", func(fl validator.FieldLevel) bool {
		return prefixRegexp.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

var (
	ErrAdminPassword = tracerr.New("admin password must be at least 8 characters")
	ErrAdminMismatch = tracerr.New("admin password confirmation does not match")
	ErrAdminEmail    = tracerr.New("admin email is invalid")
	ErrAdminUsername = tracerr.New("admin username may only contain letters, numbers, underscores and dashes")
)

// ValidationError aggregates all database config field errors of one run.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid database config: " + strings.Join(e.Fields, "; ")
}

// ValidateDBConfig checks conf against the install input contract.
// All field violations are aggregated into a single *ValidationError.
func ValidateDBConfig(conf *config.Database) error {
	err := validate.Struct(conf)
	if err == nil {
		return nil
	}
	verr, ok := err.(validator.ValidationErrors)
	if !ok {
		return tracerr.Wrap(err)
	}
	ret := new(ValidationError)
	for _, f := range verr {
		ret.Fields = append(ret.Fields, fieldMessage(f))
	}
	return ret
}

func fieldMessage(f validator.FieldError) string {
	field := strings.ToLower(f.Field())
	switch f.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s: field is required", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", field, f.Param())
	case "dbprefix":
		return fmt.Sprintf("%s: may only contain letters, numbers and underscores, at most 10 characters", field)
	case "min", "max":
		return fmt.Sprintf("%s: must be between 1 and 65535", field)
	default:
		return fmt.Sprintf("%s: invalid value", field)
	}
}

// AdminAccount is the initial administrator input.
type AdminAccount struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Validate checks the account, first violation wins.
func (a *AdminAccount) Validate() error {
	if len(a.Password) < 8 {
		return ErrAdminPassword
	}
	if a.Password != a.PasswordConfirmation {
		return ErrAdminMismatch
	}
	if validate.Var(a.Email, "required,email") != nil {
		return ErrAdminEmail
	}
	if !usernameRegexp.MatchString(a.Username) {
		return ErrAdminUsername
	}
	return nil
}
