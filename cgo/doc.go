// Package cgo groups the native bindings used for image OCR.
//
// Sub-packages ship a stub for builds with CGO disabled, where image
// extraction reports domain.ErrOCRUnavailable.
package cgo
