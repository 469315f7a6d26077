package irk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsKind(t *testing.T) {
	err := Malformed("doc.id", fmt.Errorf("short read"))
	assert.True(t, errors.Is(err, &Error{Kind: MalformedInput}))
	assert.False(t, errors.Is(err, &Error{Kind: OutOfRange}))
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := IO("terms.txt", cause)
	assert.ErrorIs(t, err, cause)
}

func TestOutOfRangeErr(t *testing.T) {
	err := OutOfRangeErr(42, nil)
	assert.Equal(t, OutOfRange, err.Kind)
	assert.Equal(t, uint32(42), err.Doc)
	assert.Contains(t, err.Error(), "doc=42")
}
