package integration

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()

	goModPathBytes, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		t.Fatalf("go env GOMOD: %v", err)
	}
	goModPath := strings.TrimSpace(string(goModPathBytes))
	if goModPath == "" {
		t.Fatalf("go env GOMOD returned empty")
	}
	repoRoot := filepath.Dir(goModPath)

	buildDir := t.TempDir()
	binaryPath := filepath.Join(buildDir, "maxrange")

	build := exec.Command("go", "build", "-o", binaryPath, "./cmd/maxrange")
	build.Dir = repoRoot
	build.Env = os.Environ()
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("go build: %v\n%s", err, string(out))
	}
	return binaryPath
}

// isolatedEnv keeps a developer's own config out of the run.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	return append(os.Environ(), "XDG_CONFIG_HOME="+t.TempDir())
}

func TestStandaloneBinaryVersionAndHelpWorkOutsideRepo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("standalone binary copy/exec test is unix-focused")
	}
	binaryPath := buildBinary(t)

	outside := t.TempDir()
	copiedBinary := filepath.Join(outside, "maxrange")

	// Use a direct file copy to avoid relying on platform-specific tools.
	data, err := os.ReadFile(binaryPath)
	if err != nil {
		t.Fatalf("read built binary: %v", err)
	}
	if err := os.WriteFile(copiedBinary, data, 0o755); err != nil {
		t.Fatalf("write copied binary: %v", err)
	}

	version := exec.Command(copiedBinary, "version")
	version.Dir = outside
	version.Env = isolatedEnv(t)
	if out, err := version.CombinedOutput(); err != nil {
		t.Fatalf("version failed: %v\n%s", err, string(out))
	}

	help := exec.Command(copiedBinary, "--help")
	help.Dir = outside
	help.Env = isolatedEnv(t)
	if out, err := help.CombinedOutput(); err != nil {
		t.Fatalf("--help failed: %v\n%s", err, string(out))
	}
}

func TestStandaloneBinaryCountAndVerify(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("standalone binary exec test is unix-focused")
	}
	binaryPath := buildBinary(t)

	count := exec.Command(binaryPath, "count", "--left", "2", "--right", "3", "2", "1", "4", "3")
	count.Dir = t.TempDir()
	count.Env = isolatedEnv(t)
	out, err := count.Output()
	if err != nil {
		t.Fatalf("count failed: %v\n%s", err, string(out))
	}
	if got := strings.TrimSpace(string(out)); got != "3" {
		t.Fatalf("count printed %q, want 3", got)
	}

	verify := exec.Command(binaryPath, "verify", "--output", "plain")
	verify.Dir = t.TempDir()
	verify.Env = isolatedEnv(t)
	if out, err := verify.CombinedOutput(); err != nil {
		t.Fatalf("verify failed: %v\n%s", err, string(out))
	}

	reversed := exec.Command(binaryPath, "count", "--left", "3", "--right", "1", "1", "2")
	reversed.Dir = t.TempDir()
	reversed.Env = isolatedEnv(t)
	err = reversed.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected non-zero exit for reversed bounds, got %v", err)
	}
}
