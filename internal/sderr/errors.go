// Package sderr defines the closed set of failures produced while resolving,
// building and running a generation. Every boundary (CLI exit codes, HTTP
// status codes) switches on Kind.
package sderr

import (
	"errors"
	"fmt"
)

// Kind tags an Error. The set is closed; add a case to every boundary switch
// when extending it.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindInvalidConfig
	KindModelNotFound
	KindNoDefaultModel
	KindExecutableNotFound
	KindProcessFailed
	KindProcessKilled
	KindOutputReadFailed
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "config_not_found"
	case KindInvalidConfig:
		return "invalid_config"
	case KindModelNotFound:
		return "model_not_found"
	case KindNoDefaultModel:
		return "no_default_model"
	case KindExecutableNotFound:
		return "executable_not_found"
	case KindProcessFailed:
		return "process_failed"
	case KindProcessKilled:
		return "process_killed"
	case KindOutputReadFailed:
		return "output_read_failed"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the tagged failure value. Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind

	Name     string // ModelNotFound
	Path     string // ConfigNotFound, ExecutableNotFound
	Reason   string // InvalidConfig; operation for IO
	ExitCode int    // ProcessFailed
	Stderr   string // ProcessFailed
	Signal   string // ProcessKilled, when known
	Err      error  // OutputReadFailed, IO
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfigNotFound:
		return "config file not found: " + e.Path
	case KindInvalidConfig:
		return "failed to parse config: " + e.Reason
	case KindModelNotFound:
		return "model not found: " + e.Name
	case KindNoDefaultModel:
		return "no --model specified and no default_model in config"
	case KindExecutableNotFound:
		return "sd-cli binary not found: " + e.Path
	case KindProcessFailed:
		return fmt.Sprintf("sd-cli failed (exit code %d): %s", e.ExitCode, e.Stderr)
	case KindProcessKilled:
		if e.Signal != "" {
			return "sd-cli was killed by signal: " + e.Signal
		}
		return "sd-cli was killed by signal"
	case KindOutputReadFailed:
		return fmt.Sprintf("failed to read output: %v", e.Err)
	case KindIO:
		if e.Reason != "" {
			return fmt.Sprintf("%s: %v", e.Reason, e.Err)
		}
		return fmt.Sprintf("io: %v", e.Err)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func ConfigNotFound(path string) error { return &Error{Kind: KindConfigNotFound, Path: path} }

func InvalidConfig(format string, a ...any) error {
	return &Error{Kind: KindInvalidConfig, Reason: fmt.Sprintf(format, a...)}
}

func ModelNotFound(name string) error { return &Error{Kind: KindModelNotFound, Name: name} }

func NoDefaultModel() error { return &Error{Kind: KindNoDefaultModel} }

func ExecutableNotFound(path string) error {
	return &Error{Kind: KindExecutableNotFound, Path: path}
}

func ProcessFailed(exitCode int, stderr string) error {
	return &Error{Kind: KindProcessFailed, ExitCode: exitCode, Stderr: stderr}
}

func ProcessKilled(signal string) error { return &Error{Kind: KindProcessKilled, Signal: signal} }

func OutputReadFailed(cause error) error { return &Error{Kind: KindOutputReadFailed, Err: cause} }

func IO(op string, cause error) error { return &Error{Kind: KindIO, Reason: op, Err: cause} }

// KindOf returns the Kind carried by err, or KindUnknown when err is not (and
// does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsModelNotFound reports whether err indicates a missing model name.
func IsModelNotFound(err error) bool { return KindOf(err) == KindModelNotFound }

// IsNoDefaultModel reports whether no model name could be resolved.
func IsNoDefaultModel(err error) bool { return KindOf(err) == KindNoDefaultModel }

// IsExecutableNotFound reports whether the sd-cli path did not resolve to a file.
func IsExecutableNotFound(err error) bool { return KindOf(err) == KindExecutableNotFound }

// IsConfigNotFound reports whether the configuration file was missing.
func IsConfigNotFound(err error) bool { return KindOf(err) == KindConfigNotFound }
