package config

import (
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("SATSCAN_TEST_DIR", "/etc/satscan")

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"scene.yaml", "scene.yaml"},
		{"~", home},
		{"~/scenes/a.yaml", filepath.Join(home, "scenes", "a.yaml")},
		{"$SATSCAN_TEST_DIR/a.toml", "/etc/satscan/a.toml"},
		{"~bob/a.yaml", "~bob/a.yaml"},
	}
	for _, c := range cases {
		got, err := ResolvePath(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q -> %q, want %q", c.in, got, c.want)
		}
	}
}
