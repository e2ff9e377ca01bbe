package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/sloc/pkg/sloc"
)

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, sloc.ExitSuccess},
		{"config", fmt.Errorf("bad: %w", sloc.ErrInvalidConfig), sloc.ExitConfigError},
		{"missing path", fmt.Errorf("nope: %w", sloc.ErrPathNotFound), sloc.ExitPathNotFound},
		{"other", errors.New("boom"), sloc.ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(func() error { return tt.err }, &stderr)
			assert.Equal(t, tt.want, code)
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_PanicIsReportedAsInternalError(t *testing.T) {
	var stderr bytes.Buffer
	code := run(func() error { panic("table corrupted") }, &stderr)

	assert.Equal(t, sloc.ExitPanic, code)
	assert.Contains(t, stderr.String(), "sloc: internal error: table corrupted")
	assert.Contains(t, stderr.String(), "goroutine")
}
