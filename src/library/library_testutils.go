package library

import (
	"context"
)

// DummyLibrary is used for testing.
type DummyLibrary []Video

// Videos implements the library.Library interface.
func (lib *DummyLibrary) Videos(ctx context.Context) ([]Video, error) {
	return *lib, nil
}

// FailingLibrary is used for testing. Every call returns the wrapped error.
type FailingLibrary struct {
	Err error
}

// Videos implements the library.Library interface.
func (lib FailingLibrary) Videos(ctx context.Context) ([]Video, error) {
	return nil, lib.Err
}
