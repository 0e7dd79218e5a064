// Package swiftpatch rewrites the SwiftTerm checkout so it builds for
// visionOS. SwiftTerm's iOS text storage overrides writingDirection, a
// property UIKit removed on visionOS; until that is guarded upstream we
// wrap the override in a platform conditional before the package is
// compiled as part of the mobile build.
package swiftpatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vultuk/agentrix/fileutil"
	"github.com/vultuk/agentrix/logutil"
)

// RelativePath locates the file to rewrite beneath the SwiftPM
// checkout directory handed to Apply.
const RelativePath = "checkouts/SwiftTerm/Sources/SwiftTerm/iOS/iOSTextStorage.swift"

// Marker is inserted by every version of this rewrite. Its presence
// without a matching template means the on-disk format drifted.
const Marker = "SWIFTTERM_VISIONOS_PATCH"

// needle is the pristine upstream text this package transforms.
const needle = "  let _rect: CGRect\n" +
	"  let _containsStart: Bool\n" +
	"  let _containsEnd: Bool\n" +
	"  \n" +
	"  override var writingDirection: UITextWritingDirection {\n" +
	"    return .leftToRight\n" +
	"  }\n" +
	"  \n"

// supersededPatch is the output of an older release of this tool, kept
// so previously patched checkouts migrate to the current form.
const supersededPatch = "  let _rect: CGRect\n" +
	"  let _containsStart: Bool\n" +
	"  let _containsEnd: Bool\n" +
	"  \n" +
	"  // SWIFTTERM_VISIONOS_PATCH\n" +
	"#if !os(visionOS)\n" +
	"  override var writingDirection: UITextWritingDirection {\n" +
	"    return .leftToRight\n" +
	"  }\n" +
	"#else\n" +
	"  override var writingDirection: UITextWritingDirection {\n" +
	"    return .leftToRight\n" +
	"  }\n" +
	"#endif\n" +
	"  \n"

// patch is the current accepted form. Rewriting the needle or the
// superseded form always yields exactly this text.
const patch = "  let _rect: CGRect\n" +
	"  let _containsStart: Bool\n" +
	"  let _containsEnd: Bool\n" +
	"  \n" +
	"  // SWIFTTERM_VISIONOS_PATCH\n" +
	"#if !os(visionOS)\n" +
	"  override var writingDirection: UITextWritingDirection {\n" +
	"    return .leftToRight\n" +
	"  }\n" +
	"#endif\n" +
	"  \n"

var (
	// ErrMarkerDrift means the marker is present but no known template
	// matches: the templates here are stale and need a maintainer.
	ErrMarkerDrift = errors.New("SwiftTerm patch marker changed; update patch templates")

	// ErrSignatureNotFound means neither the marker nor any known
	// template is present: upstream changed the file unexpectedly.
	ErrSignatureNotFound = errors.New("SwiftTerm signature not found; patch format may have changed")
)

// Rewrite classifies text against the known templates and returns the
// rewritten text and whether it changed. Matching is exact-substring
// only; nothing is ever guessed from partial matches.
func Rewrite(text string) (string, bool, error) {
	switch {
	case strings.Contains(text, patch):
		return text, false, nil
	case strings.Contains(text, supersededPatch):
		return strings.Replace(text, supersededPatch, patch, 1), true, nil
	case strings.Contains(text, needle):
		return strings.Replace(text, needle, patch, 1), true, nil
	case strings.Contains(text, Marker):
		return "", false, ErrMarkerDrift
	default:
		return "", false, ErrSignatureNotFound
	}
}

// Result reports what Apply did.
type Result struct {
	// Target is the resolved file path, empty when no root was given.
	Target string
	// Patched is true when the file was rewritten on this invocation.
	Patched bool
}

// Apply resolves the SwiftTerm source file under root and rewrites it
// if needed. An empty root or a missing target file is a successful
// no-op so build pipelines can invoke this unconditionally before the
// dependency has been fetched. The file is made owner-writable before
// the rewrite; checkouts often arrive read-only.
func Apply(root string) (Result, error) {
	if root == "" {
		return Result{}, nil
	}

	target := filepath.Join(root, filepath.FromSlash(RelativePath))
	res := Result{Target: target}

	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			logutil.Debug("SwiftTerm checkout not present, nothing to patch", "target", target)
			return res, nil
		}
		return res, fmt.Errorf("failed to read %s: %w", target, err)
	}

	rewritten, changed, err := Rewrite(string(data))
	if err != nil {
		return res, fmt.Errorf("%s: %w", target, err)
	}
	if !changed {
		logutil.Debug("SwiftTerm already patched", "target", target)
		return res, nil
	}

	if err := fileutil.EnsureWritable(target); err != nil {
		return res, fmt.Errorf("failed to make %s writable: %w", target, err)
	}
	if err := os.WriteFile(target, []byte(rewritten), fileutil.FilePermission); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", target, err)
	}

	res.Patched = true
	logutil.Info("patched SwiftTerm for visionOS", "target", target)
	return res, nil
}
