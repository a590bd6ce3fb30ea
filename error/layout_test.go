package error_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anyerr "github.com/next-trace/scg-anyerror/error"
)

func TestLargeAlignment(t *testing.T) {
	t.Parallel()

	e := anyerr.New(largeAligned{msg: "oh no!"})
	assert.Equal(t, uintptr(64), e.Layout().Align)
	assert.Equal(t, unsafe.Sizeof(largeAligned{}), e.Layout().Size)

	p, ok := anyerr.DowncastRef[largeAligned](e)
	require.True(t, ok)
	assert.Equal(t, "oh no!", p.msg)
	assert.Zero(t, uintptr(unsafe.Pointer(p))%64)
	assert.Equal(t, "oh no!", e.Error())

	v, ok := anyerr.Downcast[largeAligned](e)
	require.True(t, ok)
	assert.Equal(t, largeAligned{msg: "oh no!"}, v)
}

func TestLargeAlignment_PointerfulAndBig(t *testing.T) {
	t.Parallel()

	in := hugeAligned{msg: "oh no!"}
	in.buf[999] = 7

	for range 32 {
		e := anyerr.New(in)
		require.Equal(t, uintptr(256), e.Layout().Align)

		p, ok := anyerr.DowncastRef[hugeAligned](e)
		require.True(t, ok)
		require.Zero(t, uintptr(unsafe.Pointer(p))%256)
		require.Equal(t, in, *p)
	}
}

func TestZeroSized(t *testing.T) {
	t.Parallel()

	e := anyerr.New(zeroErr{})
	assert.Equal(t, uintptr(0), e.Layout().Size)
	assert.Equal(t, "zero", e.Error())

	_, ok := anyerr.DowncastRef[zeroErr](e)
	require.True(t, ok)

	_, ok = anyerr.Downcast[zeroAligned](e)
	require.False(t, ok, "zero-sized types are still told apart")

	v, ok := anyerr.Downcast[zeroErr](e)
	require.True(t, ok)
	assert.Equal(t, zeroErr{}, v)
}

func TestZeroSized_OverAligned(t *testing.T) {
	t.Parallel()

	e := anyerr.New(zeroAligned{})
	assert.Equal(t, anyerr.Layout{Size: 0, Align: 64}, e.Layout())

	p, ok := anyerr.DowncastRef[zeroAligned](e)
	require.True(t, ok)
	assert.Zero(t, uintptr(unsafe.Pointer(p))%64)
	assert.Equal(t, "zero aligned", e.Error())
}

func TestZeroSized_WithSource(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")

	explicit := anyerr.New(zeroErr{}, anyerr.WithSource(cause))
	assert.Same(t, cause, explicit.Source())
	assert.ErrorIs(t, explicit, cause)

	intrinsic := anyerr.New(zeroWrap{})
	assert.Same(t, errSentinel, intrinsic.Source())
	assert.ErrorIs(t, intrinsic, errSentinel)

	_, ok := anyerr.Downcast[zeroWrap](intrinsic)
	require.True(t, ok)
	assert.Nil(t, intrinsic.Source(), "a consumed handle has no source")

	_, ok = anyerr.Downcast[zeroErr](explicit)
	require.True(t, ok)
	assert.Same(t, cause, explicit.Source(), "an explicit source belongs to the handle")
}
