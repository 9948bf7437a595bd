//go:build !profile

package profiler

import "errors"

// Stubbed no-op versions when the "profile" build tag is not set.

var errDisabled = errors.New("profiler: built without the profile tag")

func Init(capacity int) {}

func Enabled() bool { return false }

func Start(name string) func() { return func() {} }

func Dump() (string, error) { return "", errDisabled }
