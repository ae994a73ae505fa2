// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package utils

// Pointer returns a pointer to the given value. It exists for filling
// optional pointer fields from literals, e.g.
//
//	opts := throttle.Options{BytesPerSecond: utils.Pointer(int64(1024))}
func Pointer[T any](val T) *T {
	return &val
}
