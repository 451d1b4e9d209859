package utils

import (
	"sync/atomic"
	"unsafe"
)

//go:nosplit
func Noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

// Lowers the target to new if new is smaller, via a CAS retry loop.
// Returns the value observed before the final attempt; the lowering
// succeeded iff the return is greater than new.
//
//go:nosplit
func AtomicMinInt32[T ~int32](targetVal *T, new T) (old T) {
	for {
		old = T(atomic.LoadInt32((*int32)(Noescape(unsafe.Pointer(targetVal)))))
		if new >= old || atomic.CompareAndSwapInt32((*int32)(Noescape(unsafe.Pointer(targetVal))), int32(old), int32(new)) {
			return old
		}
	}
}

//go:nosplit
func AtomicMaxInt32[T ~int32](targetVal *T, new T) (old T) {
	for {
		old = T(atomic.LoadInt32((*int32)(Noescape(unsafe.Pointer(targetVal)))))
		if new <= old || atomic.CompareAndSwapInt32((*int32)(Noescape(unsafe.Pointer(targetVal))), int32(old), int32(new)) {
			return old
		}
	}
}

//go:nosplit
func AtomicMaxInt64(targetVal *int64, new int64) (old int64) {
	for {
		old = atomic.LoadInt64(targetVal)
		if new <= old || atomic.CompareAndSwapInt64(targetVal, old, new) {
			return old
		}
	}
}

//go:nosplit
func AtomicAddFloat64(targetVal *float64, delta float64) (oldF float64) {
	for {
		oldU := float64Bits(*targetVal)
		oldF = float64FromBits(oldU)
		newU := float64Bits(oldF + delta)
		if atomic.CompareAndSwapUint64((*uint64)(Noescape(unsafe.Pointer(targetVal))), oldU, newU) {
			return
		}
	}
}

//go:nosplit
func float64Bits(f float64) uint64 {
	return *(*uint64)((unsafe.Pointer(&f)))
}

//go:nosplit
func float64FromBits(b uint64) float64 {
	return *(*float64)((unsafe.Pointer(&b)))
}
