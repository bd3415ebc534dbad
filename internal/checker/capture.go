package checker

import (
	"bytes"
	"io"
	"os/exec"
)

// captured holds stdout/stderr collected from one checker run.
type captured struct {
	Stdout string
	Stderr string
}

// runCaptured runs cmd while collecting its output. When tee writers are
// supplied the output is also forwarded to them as it arrives.
func runCaptured(cmd *exec.Cmd, teeOut, teeErr io.Writer) (captured, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	if teeOut != nil {
		cmd.Stdout = io.MultiWriter(teeOut, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	if teeErr != nil {
		cmd.Stderr = io.MultiWriter(teeErr, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()

	return captured{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}, err
}
