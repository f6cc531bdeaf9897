package ptywrap

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/suryansh-23/txguard/internal/redact"
	"github.com/suryansh-23/txguard/internal/types"
)

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRunCommandExitCode(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "exit 7")
	code, err := RunCommand(context.Background(), cmd, Options{Input: strings.NewReader(""), Output: nopWriter{}})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}
	if code != 7 {
		t.Fatalf("exit code = %d, want 7", code)
	}
}

func TestRunCommandRedactsOutput(t *testing.T) {
	key := "0x" + strings.Repeat("c", 64)
	cmd := exec.Command("/bin/sh", "-c", `echo "deploying with $0"; echo done`, key)
	var out bytes.Buffer
	code, err := RunCommand(context.Background(), cmd, Options{
		Input:    strings.NewReader(""),
		Output:   &out,
		Redactor: redact.New(),
	})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(out.String(), key) {
		t.Fatalf("key leaked: %q", out.String())
	}
	if !strings.Contains(out.String(), "deploying with "+types.MarkerPrivateKey) {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "done") {
		t.Fatalf("output = %q", out.String())
	}
}
