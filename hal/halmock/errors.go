package halmock

import "errors"

var (
	errTestInjected = errors.New("halmock: injected failure")
	errNotErased    = errors.New("halmock: write to unerased sector")
)
