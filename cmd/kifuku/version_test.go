package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmdWritesToStdout(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.Run(cmd, nil)

	got := out.String()
	if !strings.Contains(got, version) {
		t.Errorf("version output %q does not contain version %q", got, version)
	}
	if !strings.HasPrefix(got, "kifuku ") {
		t.Errorf("version output %q should start with the binary name", got)
	}
}
