package directive

import "fmt"

// SyntaxError reports a configuration block that could not be decoded.
type SyntaxError struct {
	Target string
	// Line is the 1-based line where the configuration block starts, when known.
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Target != "" && e.Line > 0:
		return fmt.Sprintf("directive: %s: invalid configuration at line %d: %v", e.Target, e.Line, e.Err)
	case e.Target != "":
		return fmt.Sprintf("directive: %s: invalid configuration: %v", e.Target, e.Err)
	default:
		return fmt.Sprintf("directive: invalid configuration: %v", e.Err)
	}
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
