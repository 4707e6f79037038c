package env

import (
	"encoding"
	"fmt"
	"strings"
)

type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

var _ encoding.TextUnmarshaler = (*Environment)(nil)

func (e Environment) Valid() bool {
	switch e {
	case Development, Test, Production:
		return true
	default:
		return false
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }

// UnmarshalText lets config parsing reject unknown environments. "dev" and
// "prod" are accepted as shorthands.
func (e *Environment) UnmarshalText(text []byte) error {
	v := Environment(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case "dev":
		v = Development
	case "prod":
		v = Production
	}
	if !v.Valid() {
		return fmt.Errorf("invalid environment %q (valid: development, test, production)", text)
	}
	*e = v
	return nil
}
