package num_test

import (
	"math/big"
	"testing"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint256Constructors(t *testing.T) {
	var expected uint64 = 42

	t.Run("test from uint64", func(t *testing.T) {
		n := num.NewUint(expected)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test from string", func(t *testing.T) {
		n, ok := num.UintFromString("42", 10)
		assert.False(t, ok)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test from big", func(t *testing.T) {
		n, ok := num.UintFromBig(big.NewInt(int64(expected)))
		assert.False(t, ok)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test must from string", func(t *testing.T) {
		n := num.MustUintFromString("1000000000000000000")
		assert.Equal(t, "1000000000000000000", n.String())
	})

	t.Run("test must from string panics on garbage", func(t *testing.T) {
		require.Panics(t, func() {
			num.MustUintFromString("not a number")
		})
	})
}

func TestUint256Clone(t *testing.T) {
	var (
		expect1 uint64 = 42
		expect2 uint64 = 84
		first          = num.NewUint(expect1)
		second         = first.Clone()
	)

	assert.Equal(t, expect1, first.Uint64())
	assert.Equal(t, expect1, second.Uint64())

	// now we change second value, and ensure 1 hasn't changed
	second.Add(second, num.NewUint(42))

	assert.Equal(t, expect1, first.Uint64())
	assert.Equal(t, expect2, second.Uint64())
}

func TestUint256MaxValue(t *testing.T) {
	max := num.MaxUint()
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", max.String())
	assert.True(t, max.GT(num.MustUintFromString("1000000000000000000000000000000")))
}

func TestUint256DivTruncates(t *testing.T) {
	// integer division truncates towards zero
	res := num.UintZero().Div(num.NewUint(7), num.NewUint(2))
	assert.Equal(t, uint64(3), res.Uint64())

	res = num.UintZero().Div(num.NewUint(99), num.NewUint(100))
	assert.True(t, res.IsZero())
}

func TestUint256Overflow(t *testing.T) {
	t.Run("subtraction underflow is flagged", func(t *testing.T) {
		_, underflow := num.UintZero().SubOverflow(num.NewUint(1), num.NewUint(2))
		assert.True(t, underflow)
	})

	t.Run("addition overflow is flagged", func(t *testing.T) {
		_, overflow := num.UintZero().AddOverflow(num.MaxUint(), num.NewUint(1))
		assert.True(t, overflow)
	})
}

func TestUintSum(t *testing.T) {
	res := num.Sum(num.NewUint(1), num.NewUint(2), num.NewUint(3))
	assert.Equal(t, uint64(6), res.Uint64())
}
