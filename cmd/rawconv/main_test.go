package main

import (
	"os"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("font.bin", []byte{0xde, 0xad}, 0644); err != nil {
		t.Fatal(err)
	}
	var code int
	stdout := captureStdout(t, func() { code = run([]string{"font.bin"}) })
	if code != 0 {
		t.Fatalf("run returned %d, want 0", code)
	}
	if want := "Parsing file font.bin of size 2 bytes\nExported as file font.c\n"; stdout != want {
		t.Errorf("unexpected stdout %q, want %q", stdout, want)
	}

	out, err := os.ReadFile("font.c")
	if err != nil {
		t.Fatalf("expected font.c: %v", err)
	}
	if !strings.Contains(string(out), "const uint8_t font_data[] = {\n0xDE, \n0xAD, };\n") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if code := run([]string{"nope.bin"}); code != 1 {
		t.Errorf("missing input returned %d, want 1", code)
	}
	if code := run(nil); code != 0 {
		t.Errorf("usage returned %d, want 0", code)
	}
}

func TestRun_ReportsInputBeforeOutputFailure(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("font.bin", []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("blocker", nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("meshc.yaml", []byte("output:\n  dir: blocker\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var code int
	out := captureStdout(t, func() { code = run([]string{"font.bin"}) })
	if code != 1 {
		t.Errorf("run returned %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Parsing file font.bin of size 3 bytes\n") {
		t.Errorf("expected the input report before the failure, got %q", out)
	}
	if !strings.Contains(out, "Could not create") {
		t.Errorf("expected create failure message, got %q", out)
	}
}

// captureStdout returns what fn prints to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	orig := os.Stdout
	os.Stdout = f
	defer func() { os.Stdout = orig }()
	fn()

	out, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}
