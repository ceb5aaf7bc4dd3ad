package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	omnitree "github.com/reoring/omnitree"
)

const definition = `package: test_package
entities:
  - name: entity1
    fields:
      - {name: primitive_field, type: string}
  - name: entity2
  - name: entity3
`

func writeDefinition(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(p, []byte(definition), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeJSON(t *testing.T) {
	out, err := run(t, "encode", writeDefinition(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"package":{"name":"test_package","entities":[{"entity":{"name":"entity1","fields":[{"primitive_field":{"name":"primitive_field","type":"string"}}]}},{"entity":{"name":"entity2"}},{"entity":{"name":"entity3"}}]}}` + "\n"
	if out != want {
		t.Fatalf("got %s", out)
	}
}

func TestEncodeStopAt(t *testing.T) {
	out, err := run(t, "encode", "--stop-at", "entity2", writeDefinition(t))
	if !errors.Is(err, omnitree.ErrIncomplete) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	if ExitCode(err) != ExitIncomplete {
		t.Fatalf("exit code %d", ExitCode(err))
	}
	var doc any
	if jerr := j.Unmarshal([]byte(out), &doc); jerr != nil {
		t.Fatalf("partial output is not valid JSON: %v\n%s", jerr, out)
	}
	if strings.Contains(out, "entity2") {
		t.Fatalf("output continued past the stop: %s", out)
	}
	if msg := err.Error(); !strings.Contains(msg, "encoding stopped before the whole tree was written") ||
		!strings.Contains(msg, `"entity2"`) {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestEncodeMaxNodes(t *testing.T) {
	var def strings.Builder
	def.WriteString("package: diamond\nentities:\n  - name: leaf\n")
	prev := "leaf"
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("level%d", i)
		fmt.Fprintf(&def, "  - name: %s\n    fields:\n      - {name: a, entity: %s}\n      - {name: b, entity: %s}\n", name, prev, prev)
		prev = name
	}
	p := filepath.Join(t.TempDir(), "diamond.yaml")
	if err := os.WriteFile(p, []byte(def.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "encode", "--max-nodes", "500", "-o", filepath.Join(t.TempDir(), "out.json"), p)
	if !errors.Is(err, omnitree.ErrLimitExceeded) || ExitCode(err) != ExitError {
		t.Fatalf("expected limit error with exit 1, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "output limit exceeded: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

type halfWriter struct{}

func (halfWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestEncodeShortWrite(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(halfWriter{})
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"encode", writeDefinition(t)})
	err := cmd.Execute()
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected short write, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "short write: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEncodeYAMLToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.yaml")
	out, err := run(t, "encode", "--format", "yaml", "--pretty", "-o", dst, writeDefinition(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "package:\n") {
		t.Fatalf("unexpected YAML:\n%s", b)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := run(t, "encode", "--format", "xml", writeDefinition(t)); err == nil {
		t.Fatalf("expected format error")
	}
	_, err := run(t, "encode", filepath.Join(t.TempDir(), "missing.yaml"))
	var op *omnitree.OpError
	if !errors.As(err, &op) || ExitCode(err) != ExitError {
		t.Fatalf("expected OpError with exit 1, got %v", err)
	}
	if _, err := run(t, "--log-format", "xml", "encode", writeDefinition(t)); err == nil {
		t.Fatalf("expected log format error")
	}
}

func TestJSONSchema(t *testing.T) {
	out, err := run(t, "jsonschema", "--indent", "0", writeDefinition(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]any
	if err := j.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	defs, _ := doc["$defs"].(map[string]any)
	if len(defs) != 3 || doc["title"] != "test_package" {
		t.Fatalf("unexpected document %v", doc)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != ExitOK || ExitCode(errors.New("x")) != ExitError {
		t.Fatalf("unexpected exit codes")
	}
}
