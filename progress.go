package unsquash

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
)

// runPTY runs the tool with its stdin/stdout attached to a pseudo-terminal.
// unsquashfs checks whether stdout is a terminal before drawing its
// progress bar, so the pipe-based capture path never sees progress output;
// this path does. Stderr stays on a separate pipe so failure diagnostics
// remain uncontaminated by terminal control sequences.
func (r *execRunner) runPTY(ctx context.Context, cmd *exec.Cmd) (*Outcome, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, &StartError{Tool: cmd.Path, Err: err}
	}
	defer ptmx.Close()

	// unsquashfs reads the terminal width to lay out its progress bar and
	// suppresses it on a zero-column terminal, so the PTY must carry a real
	// size before the child starts.
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 80}); err != nil {
		tty.Close()
		return nil, &StartError{Tool: cmd.Path, Err: err}
	}

	var stderr bytes.Buffer
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	if err := cmd.Start(); err != nil {
		tty.Close()
		return nil, &StartError{Tool: cmd.Path, Err: err}
	}
	// The child holds its own copy of the slave end; closing ours makes the
	// master read fail (EIO on Linux) once the child exits, which ends the
	// read loop below.
	tty.Close()

	parser := progressParser{fn: r.onProgress}
	var stdout bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, rerr := ptmx.Read(buf)
		if n > 0 {
			stdout.Write(buf[:n])
			parser.consume(string(buf[:n]))
		}
		if rerr != nil {
			break
		}
	}

	err = cmd.Wait()
	outcome := &Outcome{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	return classify(ctx, outcome, err)
}

// progressParser extracts percentage updates from unsquashfs terminal
// output. The bar is redrawn in place with carriage returns, in the shape
//
//	[=========-          ]  1234/5678  21%
//
// so each chunk is split on \r and \n and lines bracketed by '[' and '%'
// have their trailing field parsed as the percentage. Repeated values are
// suppressed so the callback fires once per change.
type progressParser struct {
	fn   func(percent int)
	last int
}

func (p *progressParser) consume(chunk string) {
	for _, line := range strings.FieldsFunc(chunk, func(r rune) bool { return r == '\r' || r == '\n' }) {
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "%") {
			continue
		}
		fields := strings.Fields(strings.TrimSuffix(line, "%"))
		if len(fields) == 0 {
			continue
		}
		percent := 0
		for _, c := range fields[len(fields)-1] {
			if c < '0' || c > '9' {
				percent = -1
				break
			}
			percent = percent*10 + int(c-'0')
		}
		if percent >= 0 && percent != p.last {
			p.last = percent
			p.fn(percent)
		}
	}
}
