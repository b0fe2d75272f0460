package ruleset

import "github.com/pkg/errors"

var (
	ErrFileNotFound      = errors.New("rule file not found")
	ErrNotAFile          = errors.New("rule source is not a regular file")
	ErrMalformedRuleFile = errors.New("malformed rule file")
)

// malformed reports a structural problem in one record.
// The result still matches ErrMalformedRuleFile under errors.Is.
func malformed(line int, format string, args ...any) error {
	return errors.Wrapf(ErrMalformedRuleFile, "line %d: "+format, append([]any{line}, args...)...)
}
