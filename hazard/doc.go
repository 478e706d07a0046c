// Package hazard implements a hazard-pointer based safe memory reclamation
// core for lock-free data structures.
//
// A mutator protects a shared address before dereferencing it by calling
// Registry.Protect, which returns a Handle. Once the mutator has unlinked a
// node from a shared structure it hands the node to a Retired buffer via
// Retire; the buffer periodically snapshots the registry and frees any
// retired address no longer protected by a live Handle.
//
// The registry is a plain value rather than package-level global state so
// that independent data structures — and independent tests — can use
// isolated registries without interfering with each other.
package hazard
