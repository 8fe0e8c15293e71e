package cli

import (
	"errors"

	"sdx/internal/sderr"
)

// Exit codes follow sysexits.h.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 64
	ExitUnavailable = 69
	ExitSoftware    = 70
	ExitIOErr       = 74
	ExitConfig      = 78
)

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	switch sderr.KindOf(err) {
	case sderr.KindConfigNotFound, sderr.KindInvalidConfig:
		return ExitConfig
	case sderr.KindModelNotFound, sderr.KindNoDefaultModel:
		return ExitUsage
	case sderr.KindExecutableNotFound:
		return ExitUnavailable
	case sderr.KindProcessFailed, sderr.KindProcessKilled:
		return ExitSoftware
	case sderr.KindOutputReadFailed, sderr.KindIO:
		return ExitIOErr
	case sderr.KindUnknown:
		return ExitFailure
	default:
		return ExitFailure
	}
}
