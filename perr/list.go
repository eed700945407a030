package perr

import (
	"github.com/hashicorp/go-multierror"
)

// List accumulates errors encountered during a parse that keeps going
// after a failure, the way the teacher's parser collects up to a handful
// of syntax errors before giving up instead of stopping at the first one.
type List struct {
	errs *multierror.Error
}

// Add records err, which may itself be nil, in which case it is ignored.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	l.errs = multierror.Append(l.errs, err)
}

// Len returns the number of errors recorded so far.
func (l *List) Len() int {
	if l.errs == nil {
		return 0
	}
	return len(l.errs.Errors)
}

// HasErrors reports whether any error has been recorded.
func (l *List) HasErrors() bool {
	return l.Len() > 0
}

// Err returns nil if no errors were recorded, or a single error
// aggregating all of them otherwise.
func (l *List) Err() error {
	if l.errs == nil {
		return nil
	}
	return l.errs.ErrorOrNil()
}

// Errors returns the individual errors recorded so far.
func (l *List) Errors() []error {
	if l.errs == nil {
		return nil
	}
	return l.errs.Errors
}
