package monitoring

import (
	"fmt"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf strings.Builder
	SetLogger(func(format string, v ...interface{}) {
		fmt.Fprintf(&buf, format, v...)
	})
	Logf("collisions: %d", 3)
	if got := buf.String(); got != "collisions: 3" {
		t.Errorf("unexpected log output %q", got)
	}

	// nil installs a no-op, not a nil function.
	SetLogger(nil)
	if Logf == nil {
		t.Fatal("SetLogger(nil) left Logf nil")
	}
	buf.Reset()
	Logf("dropped")
	if buf.Len() != 0 {
		t.Errorf("no-op logger wrote %q", buf.String())
	}
}

func TestDebugf(t *testing.T) {
	originalLogf, originalDebugf := Logf, Debugf
	defer func() { Logf, Debugf = originalLogf, originalDebugf }()

	var buf strings.Builder
	SetLogger(func(format string, v ...interface{}) {
		fmt.Fprintf(&buf, format, v...)
	})

	// Off by default.
	Debugf("candidate %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Debugf wrote before EnableDebug: %q", buf.String())
	}

	EnableDebug()
	Debugf("candidate %d", 1)
	if got := buf.String(); got != "candidate 1" {
		t.Errorf("unexpected debug output %q", got)
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf must have a default")
	}
}
