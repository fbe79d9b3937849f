// Package test contains helpers shared by the test suites.
package test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Tolerance is how far a timestamp set by the store may be from the
// time at which a test checks it.
const Tolerance = time.Minute

// TmpFile returns the path to a database file unique to the test. The
// file is removed with the test's temporary directory.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.NewString()+".sqlite")
}
