package utils

import (
	"bytes"
	"os/exec"
)

// Exec runs a command and returns its stdout, or its stderr when the
// command fails (ffmpeg puts diagnostics there).
func Exec(command ...string) (string, error) {
	cmd := exec.Command(command[0], command[1:]...)
	var out bytes.Buffer
	var errout bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errout

	err := cmd.Run()
	if err != nil {
		return errout.String(), err
	}

	return out.String(), nil
}
