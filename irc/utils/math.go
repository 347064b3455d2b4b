// Copyright (c) 2020 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package utils

// GrowBufferSize returns the size a full ring buffer of the given size grows
// to: double, capped at limit when limit > 0. A size below 1 grows to 1.
func GrowBufferSize(size, limit int) int {
	newSize := 1
	if size > 0 {
		newSize = size * 2
		if newSize < size {
			// overflow
			newSize = size
		}
	}
	if 0 < limit && limit < newSize {
		newSize = limit
	}
	return newSize
}
