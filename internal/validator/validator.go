package validator

import "github.com/garrettladley/wellness/internal/xerrors"

type Validator interface {
	// Validate returns field errors keyed by JSON path, or nil when the value
	// is acceptable.
	Validate() map[string]string
}

func Validate(v Validator) *xerrors.Error {
	if fields := v.Validate(); len(fields) > 0 {
		return xerrors.Validation(fields)
	}
	return nil
}

// Fields collects field errors under an optional path prefix. The zero value
// is ready to use.
type Fields struct {
	prefix string
	errs   map[string]string
}

// Check records msg under key when ok is false. The first message recorded
// for a key wins.
func (f *Fields) Check(ok bool, key string, msg string) {
	if ok {
		return
	}
	if f.errs == nil {
		f.errs = make(map[string]string)
	}
	key = f.path(key)
	if _, exists := f.errs[key]; !exists {
		f.errs[key] = msg
	}
}

// Nested returns a collector that writes into f with prefix prepended to every
// key.
func (f *Fields) Nested(prefix string) *Fields {
	if f.errs == nil {
		f.errs = make(map[string]string)
	}
	return &Fields{prefix: f.path(prefix), errs: f.errs}
}

// Map returns the collected errors, or nil when there are none.
func (f *Fields) Map() map[string]string {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}

func (f *Fields) path(key string) string {
	switch {
	case f.prefix == "":
		return key
	case key == "":
		return f.prefix
	default:
		return f.prefix + "." + key
	}
}
