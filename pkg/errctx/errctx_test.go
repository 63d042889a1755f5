package errctx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("order not found")

func TestWrap(t *testing.T) {
	err := Wrap(errNotFound, "fetching order")

	var ce *ContextError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"fetching order"}, ce.Trail)
	assert.Equal(t, errNotFound, ce.Err)
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, "fetching order: order not found", err.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "anything"))
	assert.NoError(t, Wrapf(nil, "order %d", 1))
	assert.NoError(t, Chain(nil, "anything"))
	assert.NoError(t, Chainf(nil, "order %d", 1))
}

func TestWrap_NestsContextErrors(t *testing.T) {
	inner := Wrap(errNotFound, "fetching order")
	outer := Wrap(inner, "handling request")

	var ce *ContextError
	require.ErrorAs(t, outer, &ce)
	assert.Equal(t, []string{"handling request"}, ce.Trail)
	assert.Equal(t, inner, ce.Err)
	assert.Equal(t, errNotFound, Cause(outer))
}

func TestChain_TrailOrder(t *testing.T) {
	err := Chain(Wrap(errNotFound, "fetching order"), "processing order 999")

	assert.Equal(t, []string{"fetching order", "processing order 999"}, TrailOf(err))
	assert.Equal(t, "processing order 999: fetching order: order not found", err.Error())
	assert.ErrorIs(t, err, errNotFound)
}

func TestChain_DoesNotModifyOriginal(t *testing.T) {
	base := Wrap(errNotFound, "fetching order")

	a := Chain(base, "a")
	b := Chain(base, "b")

	assert.Equal(t, []string{"fetching order"}, TrailOf(base))
	assert.Equal(t, []string{"fetching order", "a"}, TrailOf(a))
	assert.Equal(t, []string{"fetching order", "b"}, TrailOf(b))
}

func TestChain_OnPlainErrorWraps(t *testing.T) {
	err := Chainf(errNotFound, "processing order %d", 7)
	assert.Equal(t, []string{"processing order 7"}, TrailOf(err))
}

func TestTrailOf(t *testing.T) {
	assert.Nil(t, TrailOf(errNotFound))
	assert.Nil(t, TrailOf(nil))

	wrapped := fmt.Errorf("rpc: %w", Wrap(errNotFound, "fetching order"))
	assert.Equal(t, []string{"fetching order"}, TrailOf(wrapped))

	trail := TrailOf(wrapped)
	trail[0] = "changed"
	assert.Equal(t, []string{"fetching order"}, TrailOf(wrapped))
}

func TestContextError_NilInner(t *testing.T) {
	err := &ContextError{Trail: []string{"step"}}
	assert.Equal(t, "step: <nil>", err.Error())
}
