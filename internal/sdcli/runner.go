package sdcli

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"sdx/internal/common/fsutil"
	"sdx/internal/sderr"
)

// stderrTail bounds the diagnostic text carried in ProcessFailed.
const stderrTail = 4096

// CheckExecutable fails with ExecutableNotFound unless path names an existing
// non-directory file.
func CheckExecutable(path string) error {
	if !fsutil.IsFile(path) {
		return sderr.ExecutableNotFound(path)
	}
	return nil
}

// Runner runs sd-cli as a child process and waits for it. There is no
// timeout; the child runs until it exits.
type Runner struct {
	Log zerolog.Logger
}

// NewRunner returns a Runner logging through l.
func NewRunner(l zerolog.Logger) *Runner { return &Runner{Log: l} }

// Run executes bin with args and maps the exit status. A zero exit means the
// caller may read args.Output.
func (r *Runner) Run(bin string, args Args) error {
	argv := args.Argv()
	cmd := exec.Command(bin, argv...)
	stderr := &tailWriter{max: stderrTail}
	stdout := &lineWriter{log: r.Log}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	r.Log.Debug().Str("bin", bin).Strs("argv", argv).Msg("sd-cli start")
	err := cmd.Run()
	stdout.Flush()
	dur := time.Since(start)
	if err == nil {
		r.Log.Debug().Dur("duration", dur).Msg("sd-cli exit ok")
		return nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			r.Log.Warn().Str("signal", ws.Signal().String()).Dur("duration", dur).Msg("sd-cli killed")
			return sderr.ProcessKilled(ws.Signal().String())
		}
		if ee.ExitCode() < 0 {
			r.Log.Warn().Dur("duration", dur).Msg("sd-cli killed")
			return sderr.ProcessKilled("")
		}
		r.Log.Warn().Int("exit_code", ee.ExitCode()).Dur("duration", dur).Msg("sd-cli failed")
		return sderr.ProcessFailed(ee.ExitCode(), stderr.String())
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return sderr.ExecutableNotFound(bin)
	}
	return sderr.IO("start sd-cli", err)
}

// lineWriter forwards complete stdout lines to the logger at debug level.
type lineWriter struct {
	log zerolog.Logger
	buf []byte
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.buf = append(lw.buf, p...)
	for {
		idx := bytes.IndexByte(lw.buf, '\n')
		if idx < 0 {
			break
		}
		lw.emit(lw.buf[:idx])
		lw.buf = lw.buf[idx+1:]
	}
	return len(p), nil
}

// Flush logs a trailing line without newline, if any.
func (lw *lineWriter) Flush() {
	if len(lw.buf) > 0 {
		lw.emit(lw.buf)
		lw.buf = nil
	}
}

func (lw *lineWriter) emit(b []byte) {
	line := strings.TrimRight(string(b), "\r")
	if line != "" {
		lw.log.Debug().Msg("sd-cli> " + line)
	}
}

// tailWriter keeps only the last max bytes written to it.
type tailWriter struct {
	max int
	buf []byte
}

func (tw *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n >= tw.max {
		tw.buf = append(tw.buf[:0], p[n-tw.max:]...)
		return n, nil
	}
	if over := len(tw.buf) + n - tw.max; over > 0 {
		tw.buf = append(tw.buf[:0], tw.buf[over:]...)
	}
	tw.buf = append(tw.buf, p...)
	return n, nil
}

// String returns the kept tail without a leading partial rune and with
// surrounding whitespace removed.
func (tw *tailWriter) String() string {
	b := tw.buf
	for len(b) > 0 && !utf8.RuneStart(b[0]) {
		b = b[1:]
	}
	return strings.TrimSpace(string(b))
}
