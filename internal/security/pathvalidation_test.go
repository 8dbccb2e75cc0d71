package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateExportPath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative in cwd", "track-map-abc.png", false},
		{"absolute in cwd", filepath.Join(cwd, "out.png"), false},
		{"temp dir", filepath.Join(os.TempDir(), "out.png"), false},
		{"nested temp dir", filepath.Join(os.TempDir(), "maps", "out.png"), false},
		{"escapes via dotdot", filepath.Join(os.TempDir(), "..", "..", "etc", "out.png"), true},
		{"system path", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExportPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestWithinDirectory_SymlinkedParentEscapes(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(base, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// The target does not exist yet; the symlinked parent must still be
	// seen through.
	if err := withinDirectory(filepath.Join(link, "out.png"), base); err == nil {
		t.Error("expected path through symlinked parent to be rejected")
	}
}

func TestWithinDirectory_NonexistentTargetAllowed(t *testing.T) {
	base := t.TempDir()
	if err := withinDirectory(filepath.Join(base, "new", "out.png"), base); err != nil {
		t.Errorf("nonexistent path inside base rejected: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc123", "abc123"},
		{"session-2026.03.14_01", "session-2026.03.14_01"},
		{"a/b\\c:d", "a_b_c_d"},
		{"///", "unknown"},
		{"", "unknown"},
		{"..hidden..", "hidden"},
		{"spaces   collapse", "spaces_collapse"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilenameCapped(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	if got := SanitizeFilename(string(long)); len(got) > 128 {
		t.Errorf("sanitized length = %d, want <= 128", len(got))
	}
}
