package clipboard

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func fakeLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		available []string
		want      string
	}{
		{"macOS", "darwin", []string{"pbcopy"}, "pbcopy"},
		{"wayland preferred", "linux", []string{"xclip", "wl-copy"}, "wl-copy"},
		{"xclip before xsel", "linux", []string{"xsel", "xclip"}, "xclip -selection clipboard"},
		{"xsel fallback", "linux", []string{"xsel"}, "xsel --clipboard --input"},
		{"windows", "windows", []string{"clip"}, "clip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeLookPath(t, tt.available...)
			argv, err := command(tt.goos)
			if err != nil {
				t.Fatalf("command(%q) error = %v", tt.goos, err)
			}
			if got := strings.Join(argv, " "); got != tt.want {
				t.Errorf("command(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestCommand_Unavailable(t *testing.T) {
	tests := []struct {
		goos      string
		available []string
	}{
		{"linux", nil},
		{"darwin", []string{"xclip"}},
		{"plan9", []string{"pbcopy"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			fakeLookPath(t, tt.available...)
			if _, err := command(tt.goos); !errors.Is(err, ErrClipboardUnavailable) {
				t.Errorf("command(%q) error = %v, want ErrClipboardUnavailable", tt.goos, err)
			}
		})
	}
}

func TestCopy_Unavailable(t *testing.T) {
	fakeLookPath(t)
	if err := Copy("@article{x,\n}"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Copy() error = %v, want ErrClipboardUnavailable", err)
	}
}
