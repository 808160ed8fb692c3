package regfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p, err := NewPool("x0", "a0", []string{"t0", "t1", "a0"})
	require.NoError(t, err)
	assert.Equal(t, "x0", p.Zero())
	assert.Equal(t, "a0", p.Ret())
	assert.Equal(t, 3, p.Size())

	for _, exp := range []string{"t0", "t1", "a0"} {
		r, err := p.Next()
		require.NoError(t, err)
		assert.Equal(t, exp, r)
	}
	assert.Equal(t, 3, p.Used())

	_, err = p.Next()
	require.ErrorIs(t, err, ErrPoolExhausted)
	assert.Contains(t, err.Error(), "all 3 registers")

	p.Reset()
	assert.Equal(t, 0, p.Used())
	r, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "t0", r)
}

func TestNewPoolErrors(t *testing.T) {
	_, err := NewPool("x0", "a0", nil)
	assert.Error(t, err)
	_, err = NewPool("x0", "a0", []string{"t0", "x0"})
	assert.ErrorContains(t, err, "zero register")
	_, err = NewPool("x0", "a0", []string{"t0", "t0"})
	assert.ErrorContains(t, err, "twice")
}

func TestPoolCopiesRegisters(t *testing.T) {
	regs := []string{"t0", "t1"}
	p, err := NewPool("x0", "a0", regs)
	require.NoError(t, err)
	regs[0] = "t5"
	r, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "t0", r)
}
