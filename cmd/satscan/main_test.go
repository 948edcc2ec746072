package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"satscan/pkg/types"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil || strings.TrimSpace(out) != version {
		t.Fatalf("out=%q err=%v", out, err)
	}
}

func TestSimulate_PrintsEventsAndStatus(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "scene.yaml")
	cfg := `scene:
  name: test
  satellite:
    position: {x: 2, y: 3, z: 0}
    speed: 0.0001
  army:
    position: {x: 2, y: 0, z: 0}
  scouts:
    - name: scout
      step: 0.5
`
	if err := os.WriteFile(p, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runCLI(t, "simulate", "-c", p, "--ticks", "2", "--dt", "1s", "--log-level", "error")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "event init from=scene:test") {
		t.Fatalf("missing init event: %q", out)
	}
	if strings.Count(out, "event target_found from=satellite at=(2.000,0.000,0.000)") != 2 {
		t.Fatalf("expected two detections: %q", out)
	}
	if !strings.Contains(out, "event end from=scene:test") {
		t.Fatalf("missing end event: %q", out)
	}
	jsonStart := strings.Index(out, "{")
	var st types.StatusResponse
	if err := json.Unmarshal([]byte(out[jsonStart:]), &st); err != nil {
		t.Fatalf("status json: %v\n%s", err, out)
	}
	if st.Scene != "test" || st.Ticks != 2 || len(st.Scouts) != 1 || st.Scouts[0].Position.X != 1 {
		t.Fatalf("status=%+v", st)
	}
}

func TestSimulate_RejectsNegativeTicks(t *testing.T) {
	if _, err := runCLI(t, "simulate", "--ticks", "-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSimulate_BadConfigPath(t *testing.T) {
	if _, err := runCLI(t, "simulate", "-c", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
