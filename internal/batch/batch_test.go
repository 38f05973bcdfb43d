package batch_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robertgumeny/retemplate/internal/batch"
	"github.com/robertgumeny/retemplate/internal/log"
	"github.com/robertgumeny/retemplate/internal/rewrite"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// captureLog redirects log output into a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Out
	log.Out = &buf
	t.Cleanup(func() { log.Out = old })
	return &buf
}

// writeSource creates name under dir with content.
func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writeSource: %v", err)
	}
}

// readFile reads the file at path and returns its content as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("readFile: %v", err)
	}
	return string(data)
}

const storySource = "# <!-- Powered by BMAD™ Core -->\nid: story-template-v2\nname: Story\nversion: 2.0\n"
const storyWant = "id: story-template\nname: Story\nversion: 3.0\n  framework: RAPID-AI\n"

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func TestRun_ConvertsFiles(t *testing.T) {
	out := captureLog(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "nested", "templates")

	writeSource(t, src, "story-tmpl.yaml", storySource)
	writeSource(t, src, "prd-tmpl.yaml", "template:\n  name: PRD\n")

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   dst,
		Files:     []string{"story-tmpl.yaml", "prd-tmpl.yaml"},
	}, rewrite.New(rewrite.DefaultBranding()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"story-tmpl.yaml", "prd-tmpl.yaml"}, res.Processed); diff != "" {
		t.Errorf("Processed mismatch (-want +got):\n%s", diff)
	}
	if len(res.Missing) != 0 {
		t.Errorf("Missing = %v, want none", res.Missing)
	}
	if got := readFile(t, filepath.Join(dst, "story-tmpl.yaml")); got != storyWant {
		t.Errorf("story output = %q, want %q", got, storyWant)
	}
	wantPRD := "template:\n  name: PRD\n  version: 3.0\n  framework: RAPID-AI\n"
	if got := readFile(t, filepath.Join(dst, "prd-tmpl.yaml")); got != wantPRD {
		t.Errorf("prd output = %q, want %q", got, wantPRD)
	}
	if strings.Count(out.String(), "[SUCCESS]") != 2 {
		t.Errorf("expected two success lines, got:\n%s", out.String())
	}
}

func TestRun_MissingFileSkipped(t *testing.T) {
	out := captureLog(t)
	src := t.TempDir()
	dst := t.TempDir()

	writeSource(t, src, "a-tmpl.yaml", "id: a-template-v2\n")
	writeSource(t, src, "c-tmpl.yaml", "id: c-template-v2\n")

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   dst,
		Files:     []string{"a-tmpl.yaml", "b-tmpl.yaml", "c-tmpl.yaml"},
	}, rewrite.New(rewrite.DefaultBranding()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"a-tmpl.yaml", "c-tmpl.yaml"}, res.Processed); diff != "" {
		t.Errorf("Processed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b-tmpl.yaml"}, res.Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "[WARNING]") || !strings.Contains(out.String(), "b-tmpl.yaml") {
		t.Errorf("expected a warning naming b-tmpl.yaml, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dst, "b-tmpl.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing source produced a destination file: %v", err)
	}
}

func TestRun_TracksChanged(t *testing.T) {
	captureLog(t)
	src := t.TempDir()
	writeSource(t, src, "same.yaml", "plain: text\n")
	writeSource(t, src, "diff.yaml", "owner: BMad\n")

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   t.TempDir(),
		Files:     []string{"same.yaml", "diff.yaml"},
	}, rewrite.New(rewrite.DefaultBranding()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"diff.yaml"}, res.Changed); diff != "" {
		t.Errorf("Changed mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	out := captureLog(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeSource(t, src, "story-tmpl.yaml", storySource)

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   dst,
		Files:     []string{"story-tmpl.yaml"},
		DryRun:    true,
	}, rewrite.New(rewrite.DefaultBranding()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.DryRun || len(res.Processed) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("dry run created destination dir: %v", err)
	}
	if !strings.Contains(out.String(), "would write") {
		t.Errorf("expected dry-run log line, got:\n%s", out.String())
	}
}

func TestRun_UnreadableSourceIsFatal(t *testing.T) {
	captureLog(t)
	src := t.TempDir()
	// A directory with a template's name stats fine but cannot be read as a file.
	if err := os.Mkdir(filepath.Join(src, "a-tmpl.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, src, "b-tmpl.yaml", "id: b\n")

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   t.TempDir(),
		Files:     []string{"a-tmpl.yaml", "b-tmpl.yaml"},
	}, rewrite.New(rewrite.DefaultBranding()))
	if err == nil {
		t.Fatal("expected error reading a directory, got nil")
	}
	if len(res.Processed) != 0 {
		t.Errorf("run continued past fatal error: %v", res.Processed)
	}
}

func TestRun_InvalidUTF8IsFatal(t *testing.T) {
	captureLog(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, src, "a.yaml", "id: x\xff\xfe\n")
	writeSource(t, src, "b.yaml", "id: b\n")

	res, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   dst,
		Files:     []string{"a.yaml", "b.yaml"},
	}, rewrite.New(rewrite.DefaultBranding()))
	if !errors.Is(err, batch.ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if len(res.Processed) != 0 {
		t.Errorf("run continued past invalid UTF-8: %v", res.Processed)
	}
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if _, err := os.Stat(filepath.Join(dst, name)); !os.IsNotExist(err) {
			t.Errorf("%s was written despite the fatal error: %v", name, err)
		}
	}
}

func TestRun_CRLFNormalized(t *testing.T) {
	captureLog(t)
	src := t.TempDir()
	dst := t.TempDir()
	crlf := strings.ReplaceAll(storySource, "\n", "\r\n")
	writeSource(t, src, "story-tmpl.yaml", crlf)

	if _, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   dst,
		Files:     []string{"story-tmpl.yaml"},
	}, rewrite.New(rewrite.DefaultBranding())); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := readFile(t, filepath.Join(dst, "story-tmpl.yaml"))
	if diff := cmp.Diff(storyWant, got); diff != "" {
		t.Errorf("CRLF output mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(got, "\r") {
		t.Errorf("output kept carriage returns: %q", got)
	}
}

func TestRun_PassesFilenameToTransformer(t *testing.T) {
	captureLog(t)
	src := t.TempDir()
	writeSource(t, src, "x.yaml", "body")

	rec := &recordingTransformer{}
	if _, err := batch.Run(batch.Options{
		SourceDir: src,
		DestDir:   t.TempDir(),
		Files:     []string{"x.yaml"},
	}, rec); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"x.yaml"}, rec.names); diff != "" {
		t.Errorf("filenames mismatch (-want +got):\n%s", diff)
	}
}

type recordingTransformer struct {
	names []string
}

func (r *recordingTransformer) Transform(content, filename string) string {
	r.names = append(r.names, filename)
	return content
}
