//go:build debug

package hazard

// defaultOnViolation is the debug-build policy: assert by panicking.
// Build with -tags debug to enable it.
func defaultOnViolation(v ReclaimViolation) {
	panic(v.String())
}
