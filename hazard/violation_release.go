//go:build !debug

package hazard

// defaultOnViolation is the release-build policy: observe and continue.
// A contract violation must never halt forward progress in a release
// build, only get reported through the violation hook.
func defaultOnViolation(v ReclaimViolation) {}
