package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfig, EnvConfig)

	helloCmdPath := filepath.Join(tempDir, "rcs-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write rcs-hello source: %v", err)
	}
	build := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile rcs-hello: %v", err)
	}

	rcsBinaryPath := filepath.Join(tempDir, "rcs")
	build = exec.Command("go", "build", "-o", rcsBinaryPath, "../rcs")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile rcs binary: %v", err)
	}

	expectedConfig := filepath.Join(tempDir, "profile.yaml")
	rcsCmd := exec.Command(rcsBinaryPath, "-config", expectedConfig, "hello", "a", "b")
	rcsCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	rcsCmd.Stdout = &stdout
	rcsCmd.Stderr = &stderr
	if err := rcsCmd.Run(); err != nil {
		t.Fatalf("rcs command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{EnvConfig + "=" + expectedConfig, "args=[a b]"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"run", "demo", "check", "show", "serve", "assist", "topic", "help"} {
		if !IsCommand(name) {
			t.Errorf("IsCommand(%q) = false", name)
		}
	}
	if IsCommand("hello") {
		t.Error("IsCommand(\"hello\") = true")
	}
}
