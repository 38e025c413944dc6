//go:build libcef

package capi

/*
#cgo LDFLAGS: -lcef
*/
import "C"
