package swiftpatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTarget lays out root/checkouts/SwiftTerm/... with the given
// content and returns the target path.
func writeTarget(t *testing.T, root, content string) string {
	t.Helper()

	target := filepath.Join(root, filepath.FromSlash(RelativePath))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return target
}

func readTarget(t *testing.T, target string) string {
	t.Helper()

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestApplyEmptyRootIsNoOp(t *testing.T) {
	res, err := Apply("")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Patched {
		t.Error("Apply() reported a patch for an empty root")
	}
	if res.Target != "" {
		t.Errorf("Target = %q, want empty", res.Target)
	}
}

func TestApplyMissingTargetIsNoOp(t *testing.T) {
	res, err := Apply(t.TempDir())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Patched {
		t.Error("Apply() reported a patch for a missing target")
	}
}

func TestApplyRewritesPristineSource(t *testing.T) {
	root := t.TempDir()
	target := writeTarget(t, root, "prefix\n"+needle+"suffix\n")

	res, err := Apply(root)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !res.Patched {
		t.Fatal("Apply() did not report a patch")
	}
	if got, want := readTarget(t, target), "prefix\n"+patch+"suffix\n"; got != want {
		t.Errorf("patched content = %q, want %q", got, want)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	root := t.TempDir()
	target := writeTarget(t, root, needle)

	if _, err := Apply(root); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	first := readTarget(t, target)

	res, err := Apply(root)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if res.Patched {
		t.Error("second Apply() rewrote an already patched file")
	}
	if got := readTarget(t, target); got != first {
		t.Errorf("content changed on second apply: %q != %q", got, first)
	}
}

func TestApplyMigratesSupersededForm(t *testing.T) {
	pristineRoot := t.TempDir()
	supersededRoot := t.TempDir()
	pristineTarget := writeTarget(t, pristineRoot, needle)
	supersededTarget := writeTarget(t, supersededRoot, supersededPatch)

	for _, root := range []string{pristineRoot, supersededRoot} {
		res, err := Apply(root)
		if err != nil {
			t.Fatalf("Apply(%s) error = %v", root, err)
		}
		if !res.Patched {
			t.Errorf("Apply(%s) did not report a patch", root)
		}
	}

	// Both starting forms converge to the same final content.
	if got, want := readTarget(t, supersededTarget), readTarget(t, pristineTarget); got != want {
		t.Errorf("superseded form converged to %q, want %q", got, want)
	}
	if got := readTarget(t, pristineTarget); got != patch {
		t.Errorf("pristine form converged to %q, want patch constant", got)
	}
}

func TestApplyRecoversReadOnlyTarget(t *testing.T) {
	root := t.TempDir()
	target := writeTarget(t, root, needle)
	if err := os.Chmod(target, 0444); err != nil {
		t.Fatalf("Chmod() error = %v", err)
	}

	res, err := Apply(root)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !res.Patched {
		t.Fatal("Apply() did not report a patch")
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode()&0200 == 0 {
		t.Error("target is not owner-writable after patching")
	}
	if got := readTarget(t, target); got != patch {
		t.Errorf("content = %q, want patch constant", got)
	}
}

func TestApplyFailsOnMarkerDrift(t *testing.T) {
	root := t.TempDir()
	target := writeTarget(t, root, "// "+Marker+"\nsomething unrecognized\n")
	before := readTarget(t, target)

	_, err := Apply(root)
	if !errors.Is(err, ErrMarkerDrift) {
		t.Fatalf("Apply() error = %v, want ErrMarkerDrift", err)
	}
	if got := readTarget(t, target); got != before {
		t.Error("file was modified on a fatal classification")
	}
}

func TestApplyFailsOnUnrecognizedSource(t *testing.T) {
	root := t.TempDir()
	target := writeTarget(t, root, "class SomethingElse {}\n")
	before := readTarget(t, target)

	_, err := Apply(root)
	if !errors.Is(err, ErrSignatureNotFound) {
		t.Fatalf("Apply() error = %v, want ErrSignatureNotFound", err)
	}
	if got := readTarget(t, target); got != before {
		t.Error("file was modified on a fatal classification")
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantChanged bool
		wantErr     error
	}{
		{
			name:        "pristine upstream form",
			input:       needle,
			want:        patch,
			wantChanged: true,
		},
		{
			name:        "superseded patched form",
			input:       supersededPatch,
			want:        patch,
			wantChanged: true,
		},
		{
			name:  "current form is a no-op",
			input: patch,
			want:  patch,
		},
		{
			name:    "marker without template",
			input:   "x // " + Marker + " y",
			wantErr: ErrMarkerDrift,
		},
		{
			name:    "unrecognized source",
			input:   "no signatures here",
			wantErr: ErrSignatureNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := Rewrite(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Rewrite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got != tt.want {
				t.Errorf("Rewrite() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteTwiceMatchesOnce(t *testing.T) {
	once, _, err := Rewrite(needle)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	twice, changed, err := Rewrite(once)
	if err != nil {
		t.Fatalf("second Rewrite() error = %v", err)
	}
	if changed {
		t.Error("second Rewrite() reported a change")
	}
	if twice != once {
		t.Errorf("second Rewrite() = %q, want %q", twice, once)
	}
}
