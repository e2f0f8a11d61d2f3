// Package upload forwards image bytes to the external upload sink, which
// hosts them and returns a public URL.
package upload

import (
	"context"
	"errors"
	"io"
)

// ErrSinkDisabled is returned when no upload sink is configured.
var ErrSinkDisabled = errors.New("upload sink not configured")

// Uploader sends image content to the sink and returns the hosted URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Disabled is an Uploader for deployments without a configured sink.
// Every upload fails with ErrSinkDisabled.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	return "", ErrSinkDisabled
}
