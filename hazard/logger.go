package hazard

// Logger receives low-frequency structured events from a Registry or
// Retired buffer: registry growth and reclamation-scan results. Publishing
// into an already acquired slot, clearing a slot and appending to a retired
// buffer never log — events happen only once per new slot (Registry.Protect
// acquires one on every call) or once per scan.
//
// The default Logger is NopLogger; nothing in this package imports a
// logging library, preferring plain Stats() accessors over a logging
// dependency for the common case.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// NopLogger discards every event. It is the default Logger for both
// Registry and Retired.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
