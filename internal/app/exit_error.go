package app

import "errors"

// Process exit codes returned by RunWithOptions.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfig        = 2 // settings file or flag overrides rejected
	ExitUnknownTarget = 3 // target id missing from the ship catalogue
	ExitInvalidInput  = 4 // target or range the damage model cannot use
)

// ExitError carries the exit code a failed run should end the process with.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit " + exitCodeName(e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func ExitWithError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func exitCodeName(code int) string {
	switch code {
	case ExitOK:
		return "ok"
	case ExitConfig:
		return "config"
	case ExitUnknownTarget:
		return "unknown target"
	case ExitInvalidInput:
		return "invalid input"
	}
	return "failure"
}

// exitCode maps a run error to the process exit code. Wrapped ExitErrors
// keep their code.
func exitCode(err error) (int, error) {
	if err == nil {
		return ExitOK, nil
	}
	var ee ExitError
	if errors.As(err, &ee) {
		return ee.Code, ee.Err
	}
	return ExitFailure, err
}
