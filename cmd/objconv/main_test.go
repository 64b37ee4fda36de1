package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	obj := "v 1 0 0\nv 0 1 0\nv 0 0 1\nvn 0 0 1\nf 1//1 2//1 3//1\n"
	if err := os.WriteFile("wedge.obj", []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}

	if code := run([]string{"wedge.obj"}); code != 0 {
		t.Fatalf("run returned %d, want 0", code)
	}

	out, err := os.ReadFile(filepath.Join(dir, "wedge.c"))
	if err != nil {
		t.Fatalf("expected wedge.c: %v", err)
	}
	for _, want := range []string{
		"const int16_t wedge_model[] = {\n16383, 0, 0, 0, 0, 16383,\n",
		"const uint16_t wedge_triangles = 1;",
		"const bool wedge_has_texcoords = false;",
		"const bool wedge_has_normals = true;",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Failures(t *testing.T) {
	t.Chdir(t.TempDir())

	if code := run(nil); code != 0 {
		t.Errorf("usage returned %d, want 0", code)
	}
	if code := run([]string{"missing.obj"}); code != 1 {
		t.Errorf("missing input returned %d, want 1", code)
	}

	if err := os.WriteFile("meshc.yaml", []byte("output:\n  overflow: clamp\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if code := run([]string{"missing.obj"}); code != 1 {
		t.Errorf("bad config returned %d, want 1", code)
	}
}

func TestRun_ReportsInputBeforeOutputFailure(t *testing.T) {
	t.Chdir(t.TempDir())

	obj := "v 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\n"
	if err := os.WriteFile("wedge.obj", []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}
	// A regular file where the output directory should be
	if err := os.WriteFile("blocker", nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("meshc.yaml", []byte("output:\n  dir: blocker/sub\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var code int
	out := captureStdout(t, func() { code = run([]string{"wedge.obj"}) })
	if code != 1 {
		t.Errorf("run returned %d, want 1", code)
	}

	want := fmt.Sprintf("Parsing file wedge.obj of size %d bytes\nCould not create %s!\n",
		len(obj), filepath.Join("blocker", "sub", "wedge.c"))
	if out != want {
		t.Errorf("unexpected stdout:\n%q\nwant:\n%q", out, want)
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
