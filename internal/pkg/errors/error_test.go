package errors

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	e := New("sample error message")
	if e == nil {
		t.Errorf("expected non-nil error but got nil")
		return
	}

	errString := e.Error()
	match, err := regexp.Match(`sample error message`, []byte(errString))
	if err != nil {
		t.Error(err)
		return
	}

	if !match {
		t.Errorf("expected %q to match %q", errString, `sample error message`)
	}
}

func TestNewEmbeddedError(t *testing.T) {
	errOne := New("sample error message one")
	errTwo := Wrap(errOne, "sample error message two")

	er := errors.Unwrap(errTwo)
	if er != errOne {
		t.Errorf("expected %v to be equal to %v", er, errOne)
	}
}

func TestFilePath(t *testing.T) {
	path := filePath()

	if path == "" {
		t.Fatalf("expected non-empty string but got empty string")
	}

	pattern := `^at testing.tRunner.*`
	match, err := regexp.Match(pattern, []byte(path))
	if err != nil {
		t.Error(err)
	}

	if !match {
		t.Fatalf("expected %q to match %q", path, pattern)
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error", err: cause, want: Unknown},
		{name: "app error", err: E(Unreachable, "could not reach page", cause), want: Unreachable},
		{name: "wrapped app error", err: Wrap(E(Timeout, "too slow", nil), "analysis failed"), want: Timeout},
		{name: "canceled", err: E(Canceled, "caller left", context.Canceled), want: Canceled},
		{name: "nil", err: nil, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := E(ParsingFailed, "failed to parse html", cause)

	assert.Equal(t, "failed to parse html: boom", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "parsing_failed", err.Kind.String())
	assert.Equal(t, "canceled", Canceled.String())
	assert.Equal(t, "not found", E(NotFound, "not found", nil).Error())
}
