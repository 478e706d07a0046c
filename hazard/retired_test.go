package hazard

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestRetireReclaimsUnhazardousAddress(t *testing.T) {
	reg := NewRegistry()
	rt := reg.NewRetired()

	x := 1
	freed := false
	rt.Retire(addrOf(&x), func(unsafe.Pointer) { freed = true })

	rt.scan()

	require.True(t, freed)
	require.Equal(t, 0, rt.Stats().Pending)
	require.Equal(t, uint64(1), rt.Stats().Freed)
}

func TestRetireDefersWhileProtected(t *testing.T) {
	reg := NewRegistry()
	rt := reg.NewRetired()

	x := 1
	freed := false
	h := reg.Protect(addrOf(&x))

	rt.Retire(addrOf(&x), func(unsafe.Pointer) { freed = true })
	rt.scan()
	require.False(t, freed, "scan must not reclaim an address still covered by a live hazard")

	h.Release()
	rt.scan()
	require.True(t, freed)
}

func TestDoubleRetireReportsViolationAndDoesNotDoubleFree(t *testing.T) {
	reg := NewRegistry()
	var violations []ReclaimViolation
	rt := reg.NewRetired(WithOnViolation(func(v ReclaimViolation) {
		violations = append(violations, v)
	}))

	x := 1
	deleteCount := 0
	rt.Retire(addrOf(&x), func(unsafe.Pointer) { deleteCount++ })
	rt.Retire(addrOf(&x), func(unsafe.Pointer) { deleteCount++ })

	require.Len(t, violations, 1)
	require.Equal(t, DoubleRetire, violations[0].Kind)

	rt.scan()
	require.Equal(t, 1, deleteCount, "the address must only ever be deleted once")
}

func TestDeleterPanicDoesNotBlockFutureScans(t *testing.T) {
	reg := NewRegistry()
	var violations []ReclaimViolation
	rt := reg.NewRetired(WithOnViolation(func(v ReclaimViolation) {
		violations = append(violations, v)
	}))

	bad, good := 1, 2
	rt.Retire(addrOf(&bad), func(unsafe.Pointer) { panic("boom") })
	goodFreed := false
	rt.Retire(addrOf(&good), func(unsafe.Pointer) { goodFreed = true })

	require.NotPanics(t, func() { rt.scan() })

	require.True(t, goodFreed)
	require.Len(t, violations, 1)
	require.Equal(t, DeleterPanic, violations[0].Kind)
	require.Equal(t, 0, rt.Stats().Pending)
}

func TestRetireTriggersScanAtThreshold(t *testing.T) {
	reg := NewRegistry()
	rt := reg.NewRetired(WithCapacity(8), WithScanThreshold(4))

	addrs := make([]*int, 6)
	freedCount := 0
	for i := range addrs {
		addrs[i] = new(int)
		rt.Retire(unsafe.Pointer(addrs[i]), func(unsafe.Pointer) { freedCount++ })
	}

	// Threshold (4) was crossed on the 4th retire, which should have
	// scanned and reclaimed the first four (nothing protects them).
	require.Equal(t, 4, freedCount)
	require.Equal(t, 2, rt.Stats().Pending)
}

func TestCloseDrainsBuffer(t *testing.T) {
	reg := NewRegistry()
	rt := reg.NewRetired()

	for i := 0; i < 5; i++ {
		x := new(int)
		rt.Retire(unsafe.Pointer(x), func(unsafe.Pointer) {})
	}

	rt.Close()
	require.Equal(t, 0, rt.Stats().Pending)
	require.Equal(t, uint64(5), rt.Stats().Freed)
}

func TestRetireNilAddressIsNoop(t *testing.T) {
	reg := NewRegistry()
	rt := reg.NewRetired()

	rt.Retire(nil, func(unsafe.Pointer) { t.Fatal("deleter must never run for a nil address") })
	require.Equal(t, 0, rt.Stats().Pending)
}
