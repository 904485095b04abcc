package engine

import "github.com/cubit-ml/cubit/device"

// vendorCall converts the vendor status convention (zero means success)
// into the shared error taxonomy. On failure the operation's output
// buffers are undefined but not corrupted; nothing is retried.
func vendorCall(routine string, st device.Status) error {
	if st == device.StatusOK {
		return nil
	}
	return &device.VendorError{Routine: routine, Status: st}
}

// transOf returns the vendor transpose flag for combining operand order
// ox with the canonical frame order oc: equal orders need no transpose,
// differing orders substitute the flag for a physical data transpose.
func transOf(sameOrder bool) device.Transpose {
	if sameOrder {
		return device.NoTrans
	}
	return device.Trans
}

// uploOf translates a logical region into the vendor fill mode, which
// always describes the column-major view: a row-major matrix presents its
// opposite half to the vendor.
func uploOf(upper, colMajor bool) device.Uplo {
	if upper == colMajor {
		return device.Upper
	}
	return device.Lower
}

// diagOf translates the unit-diagonal flag into the vendor enumerant.
func diagOf(unit bool) device.Diag {
	if unit {
		return device.Unit
	}
	return device.NonUnit
}
