//go:build !cgo || !wlc
// +build !cgo !wlc

package wlc

import "fmt"

// NewNative fails when the binary was built without libwlc support.
func NewNative() (Native, error) {
	return nil, fmt.Errorf("libwlc backend not available (build with CGO enabled and -tags wlc)")
}
