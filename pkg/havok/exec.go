package havok

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
)

// ExecOptions configures an ExecTool.
type ExecOptions struct {
	// Path is the tool executable.
	Path string
	// Launcher, when set, runs the executable through another program
	// such as wine.
	Launcher string
	// WorkDir is the parent of the per-call exchange directories. Empty
	// uses the OS temp directory.
	WorkDir string
	// Keep leaves exchange directories in place after each call.
	Keep bool
	// Timeout bounds each invocation; zero means no limit.
	Timeout time.Duration
	// Fs holds the exchange files. Defaults to the OS filesystem, which is
	// the only one the tool process can see.
	Fs afero.Fs
}

// ExecTool runs the external executable, exchanging payloads through files
// in a temporary directory.
type ExecTool struct {
	opts   ExecOptions
	fs     afero.Fs
	logger zerolog.Logger
}

// NewExecTool creates an ExecTool
func NewExecTool(opts ExecOptions) *ExecTool {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ExecTool{
		opts:   opts,
		fs:     fs,
		logger: logging.GetLogger("havok.exec"),
	}
}

// TagSkeleton runs mode 1.
func (t *ExecTool) TagSkeleton(ctx context.Context, skeleton []byte) ([]byte, error) {
	return t.run(ctx, ModeTagSkeleton, []input{{"skeleton.hkx", skeleton}}, nil, "skeleton.xml")
}

// PackAnimation runs mode 2.
func (t *ExecTool) PackAnimation(ctx context.Context, xml []byte) ([]byte, error) {
	return t.run(ctx, ModePackAnimation, []input{{"animation.xml", xml}}, nil, "animation.hkx")
}

// Combine runs mode 3.
func (t *ExecTool) Combine(ctx context.Context, skeleton, animation []byte, index uint16) ([]byte, error) {
	inputs := []input{{"skeleton.hkx", skeleton}, {"animation.hkx", animation}}
	return t.run(ctx, ModeCombine, inputs, []string{strconv.Itoa(int(index))}, "combined.hkx")
}

type input struct {
	name string
	data []byte
}

func (t *ExecTool) checkExecutable() error {
	path := t.opts.Path
	if path == "" {
		return errors.New(errors.ErrExternalTool, "no conversion tool configured")
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if _, err := exec.LookPath(path); err == nil {
		return nil
	}
	return errors.Newf(errors.ErrExternalTool, "conversion tool %s is missing", path).
		WithDetail("path", path)
}

func (t *ExecTool) run(ctx context.Context, mode Mode, inputs []input, extra []string, outName string) ([]byte, error) {
	if err := t.checkExecutable(); err != nil {
		return nil, err
	}

	dir, err := afero.TempDir(t.fs, t.opts.WorkDir, "animassist-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to create exchange directory")
	}
	if t.opts.Keep {
		t.logger.Info().Str("dir", dir).Msg("Keeping exchange directory")
	} else {
		defer func() {
			if err := t.fs.RemoveAll(dir); err != nil {
				t.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove exchange directory")
			}
		}()
	}

	args := []string{strconv.Itoa(int(mode))}
	for _, in := range inputs {
		p := filepath.Join(dir, in.name)
		if err := afero.WriteFile(t.fs, p, in.data, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", in.name)
		}
		args = append(args, p)
	}
	args = append(args, extra...)
	outPath := filepath.Join(dir, outName)
	args = append(args, outPath)

	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	name, cmdArgs := t.opts.Path, args
	if t.opts.Launcher != "" {
		name, cmdArgs = t.opts.Launcher, append([]string{t.opts.Path}, args...)
	}

	cmd := exec.CommandContext(ctx, name, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	t.logger.Debug().
		Str("mode", mode.String()).
		Str("command", name).
		Strs("args", cmdArgs).
		Msg("Executing conversion tool")

	done := logging.LogOperationStart(t.logger, mode.String())
	runErr := cmd.Run()
	done()

	exitCode := 0
	var exitErr *exec.ExitError
	if stderrors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	out, readErr := afero.ReadFile(t.fs, outPath)
	if readErr != nil || len(out) == 0 {
		cause := runErr
		if cause == nil {
			cause = readErr
		}
		e := errors.Newf(errors.ErrExternalTool, "conversion tool produced no output in %s mode", mode).
			WithDetail("mode", mode.String()).
			WithDetail("exitCode", exitCode).
			WithDetail("stdout", stdout.String()).
			WithDetail("stderr", stderr.String())
		e.Wrapped = cause
		if ctx.Err() != nil {
			e.Wrapped = ctx.Err()
		}
		t.logger.Error().
			Err(e.Wrapped).
			Str("mode", mode.String()).
			Int("exitCode", exitCode).
			Str("stdout", stdout.String()).
			Msg("Conversion tool failed")
		return nil, e
	}

	if runErr != nil {
		t.logger.Warn().
			Err(runErr).
			Str("mode", mode.String()).
			Int("bytes", len(out)).
			Msg("Conversion tool exited abnormally after writing its output")
	}

	t.logger.Debug().
		Str("mode", mode.String()).
		Int("bytes", len(out)).
		Str("stdout", stdout.String()).
		Msg("Conversion tool finished")

	return out, nil
}
