// probe.go - one-shot checks for link and clone capability
//
// (c) 2026 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xfer

import (
	"os"
	"path/filepath"
)

const (
	// ProbeFile is a file guaranteed to exist in the old tree
	ProbeFile = "PG_VERSION"

	// ProbeSuffix is appended to ProbeFile to name the probe
	// artifact in the new tree.
	ProbeSuffix = ".linktest"
)

const (
	linkHint  = "In link mode the old and new data directories must be on the same file system volume."
	cloneHint = "File cloning is only supported on file systems with reflink support (btrfs, xfs)."
)

// ProbeLink verifies that files in 'oldRoot' can be hard linked
// into 'newRoot'. A non-nil error (*ProbeError) is fatal to the
// upgrade run.
func ProbeLink(oldRoot, newRoot string) error {
	return probe("create hard link", linkHint, oldRoot, newRoot, LinkFile)
}

// ProbeClone verifies that files in 'oldRoot' can be cloned into
// 'newRoot'. A non-nil error (*ProbeError) is fatal to the
// upgrade run.
func ProbeClone(oldRoot, newRoot string) error {
	return probe("clone a file", cloneHint, oldRoot, newRoot, CloneFile)
}

// Probe runs the capability probe needed by 'mode'; Copy needs none.
func Probe(mode Mode, oldRoot, newRoot string) error {
	switch mode {
	case Link:
		return ProbeLink(oldRoot, newRoot)
	case Clone:
		return ProbeClone(oldRoot, newRoot)
	}
	return nil
}

func probe(op, hint string, oldRoot, newRoot string, fp func(dst, src string) error) error {
	existing := filepath.Join(oldRoot, ProbeFile)
	test := filepath.Join(newRoot, ProbeFile+ProbeSuffix)

	// stale artifact from an earlier run; might not exist
	os.Remove(test)

	err := fp(test, existing)
	os.Remove(test)
	if err != nil {
		return &ProbeError{
			Op:       op,
			Existing: existing,
			Test:     test,
			Hint:     hint,
			Err:      err,
		}
	}
	return nil
}
