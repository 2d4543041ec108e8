package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/errors"
)

// testCLI returns a quiet CLI whose output is captured in the returned
// buffer, with the cache redirected into a temporary directory.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	return c, &out
}

// fixture copies the spliced test alignment into a temporary directory.
func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "pkg", "pipeline", "testdata", "spliced.toml"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "spliced.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommand(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()

	want := map[string]bool{"layout": true, "visualize": true, "render": true, "splice": true, "cache": true, "completion": true}
	for _, cmd := range root.Commands() {
		delete(want, cmd.Name())
	}
	if len(want) != 0 {
		t.Errorf("missing subcommands: %v", want)
	}
}

func TestRenderCommand(t *testing.T) {
	c, out := testCLI(t)
	input := fixture(t)

	if err := run(t, c, "render", input, "-f", "svg,json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	base := strings.TrimSuffix(input, ".toml")
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing output %s: %v", base+ext, err)
		}
	}
	if !strings.Contains(out.String(), "Render complete") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRenderCommandStdout(t *testing.T) {
	c, out := testCLI(t)
	if err := run(t, c, "render", fixture(t), "-f", "txt", "-o", "-", "--columns", "30"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "NM_000001:chr1 pairwise") {
		t.Errorf("text artifact = %q", out.String())
	}
}

func TestRenderCommandMissingFile(t *testing.T) {
	c, _ := testCLI(t)
	err := run(t, c, "render", filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("render missing file = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	c, out := testCLI(t)
	input := fixture(t)

	if err := run(t, c, "layout", input, "--width", "120"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	layoutPath := strings.TrimSuffix(input, ".toml") + layoutSuffix
	l, err := readLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("readLayoutFile: %v", err)
	}
	if l.Width != 120 || l.AlignmentID != "NM_000001:chr1" {
		t.Errorf("layout = %s width %g", l.AlignmentID, l.Width)
	}

	out.Reset()
	svgPath := filepath.Join(t.TempDir(), "glyph.svg")
	if err := run(t, c, "visualize", layoutPath, "-o", svgPath); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil || !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("visualize output: %v", err)
	}
}

func TestReadLayoutFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := readLayoutFile(filepath.Join(dir, "none.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing layout = %v", err)
	}
	if _, err := readLayoutFile(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed layout = %v", err)
	}
}

func TestSpliceCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"splice", "gt", "ag"}, "GT-AG"},
		{[]string{"splice", "GA", "AG"}, "non-consensus"},
	}
	for _, tt := range tests {
		c, out := testCLI(t)
		if err := run(t, c, tt.args...); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%v output = %q, want %q", tt.args, out.String(), tt.want)
		}
	}

	c, out := testCLI(t)
	if err := run(t, c, "splice", fixture(t)); err != nil {
		t.Fatalf("splice file: %v", err)
	}
	if !strings.Contains(out.String(), "1 of 1 introns") || !strings.Contains(out.String(), "1100-1200") {
		t.Errorf("splice file output = %q", out.String())
	}

	c, _ = testCLI(t)
	if err := run(t, c, "splice", "GTX", "AG"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad dinucleotide = %v, want INVALID_INPUT", err)
	}
}

func TestClearCache(t *testing.T) {
	c, out := testCLI(t)
	dir := filepath.Join(t.TempDir(), appName)

	if err := c.clearCache(dir); err != nil {
		t.Fatalf("clear missing dir: %v", err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("output = %q", out.String())
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := c.clearCache(dir); err != nil {
		t.Fatalf("clearCache: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("output = %q", out.String())
	}
	if _, hit, _ := fc.Get(ctx, "layout:a"); hit {
		t.Error("entry survived clear")
	}
}

func TestCompletionScript(t *testing.T) {
	c, out := testCLI(t)
	if err := run(t, c, "completion", "bash"); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), "__start_alnglyph") {
		t.Error("bash completion should define __start_alnglyph")
	}
	if err := run(t, c, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg", "json", "txt"}},
		{"svg,", []string{"svg,json", "svg,txt"}},
		{"svg,txt,j", []string{"svg,txt,json"}},
	}
	for _, tt := range tests {
		got, dir := completeFormats(nil, nil, tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if dir&cobra.ShellCompDirectiveNoFileComp == 0 {
			t.Errorf("completeFormats(%q) should not complete files", tt.in)
		}
	}
}

func TestCompleteFiles(t *testing.T) {
	got, dir := completeFiles("toml")(nil, nil, "")
	if !reflect.DeepEqual(got, []string{"toml"}) || dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("first argument = %v %v, want toml filter", got, dir)
	}
	if got, _ := completeFiles("toml")(nil, []string{"a.toml"}, ""); got != nil {
		t.Errorf("second argument = %v, want none", got)
	}
}
