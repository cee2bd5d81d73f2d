package diag

import "fmt"

// Diagnostics accumulates non-fatal problems found while compiling.
// A nil *Diagnostics discards everything written to it.
type Diagnostics struct {
	entries []string
}

// New returns an empty diagnostics collector
func New() *Diagnostics {
	return &Diagnostics{}
}

// Warn records a formatted warning
func (d *Diagnostics) Warn(format string, args ...any) {
	if d == nil {
		return
	}
	d.entries = append(d.entries, fmt.Sprintf(format, args...))
}

// WarnErr records err as a warning
func (d *Diagnostics) WarnErr(err error) {
	if d == nil || err == nil {
		return
	}
	d.entries = append(d.entries, err.Error())
}

// Warnings returns a copy of the recorded warnings
func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of recorded warnings
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
