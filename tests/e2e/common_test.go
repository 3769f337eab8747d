package e2e

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// buildFieldvaultBinary builds the fieldvault binary in the specified
// directory and returns its path.
func buildFieldvaultBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "fieldvault.exe")
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/fieldvault")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build fieldvault: %v\n%s", err, string(out))
	}
	return bin
}

// runIn runs the binary in dir and returns combined output.
func runIn(t *testing.T, bin, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
