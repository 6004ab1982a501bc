// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/etcdio/errors"
)

func TestNewComparison(t *testing.T) {
	t.Run("numeric targets", func(t *testing.T) {
		for _, target := range []Target{Version, CreateRevision, ModRevision, Lease} {
			cmp, err := NewComparison("key", Greater, "-12", target)
			require.NoError(t, err, target.String())
			assert.Equal(t, "key", cmp.Key())
			assert.Equal(t, Greater, cmp.Operator())
			assert.Equal(t, target, cmp.Target())
			assert.Equal(t, "-12", cmp.Value())
			assert.EqualValues(t, -12, cmp.number)
			_, ok := cmp.RangeEnd()
			assert.False(t, ok)
			assert.False(t, cmp.IsPrefix())
		}
	})

	t.Run("value target accepts any text", func(t *testing.T) {
		cmp, err := NewComparison("key", NotEqual, "not_a_number", Value)
		require.NoError(t, err)
		assert.Equal(t, "not_a_number", cmp.Value())
	})

	t.Run("non integer value for numeric target", func(t *testing.T) {
		for _, target := range []Target{Version, CreateRevision, ModRevision, Lease} {
			_, err := NewComparison("key", Equal, "not_a_number", target)
			require.Error(t, err)
			assert.ErrorIs(t, err, gerrors.ErrValidation)
		}
	})

	t.Run("out of range integer", func(t *testing.T) {
		_, err := NewComparison("key", Equal, "9223372036854775808", Version)
		assert.ErrorIs(t, err, gerrors.ErrValidation)
	})

	t.Run("empty value for numeric target", func(t *testing.T) {
		_, err := NewComparison("key", Equal, "", ModRevision)
		assert.ErrorIs(t, err, gerrors.ErrValidation)
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := NewComparison("key", Operator(42), "1", Version)
		assert.ErrorIs(t, err, gerrors.ErrValidation)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := NewComparison("key", Equal, "1", Target(42))
		assert.ErrorIs(t, err, gerrors.ErrValidation)
	})
}

func TestComparisonRanges(t *testing.T) {
	base, err := NewComparison("service/", Equal, "0", CreateRevision)
	require.NoError(t, err)

	t.Run("with range", func(t *testing.T) {
		first := base.WithRange("service0")
		second := base.WithRange("service0")
		assert.Equal(t, first, second)

		end, ok := first.RangeEnd()
		assert.True(t, ok)
		assert.Equal(t, "service0", end)
		assert.False(t, first.IsPrefix())

		_, ok = base.RangeEnd()
		assert.False(t, ok)
	})

	t.Run("with prefix", func(t *testing.T) {
		first := base.WithPrefix()
		second := base.WithPrefix()
		assert.Equal(t, first, second)

		end, ok := first.RangeEnd()
		assert.True(t, ok)
		assert.Equal(t, "service0", end)
		assert.True(t, first.IsPrefix())

		_, ok = base.RangeEnd()
		assert.False(t, ok)
		assert.False(t, base.IsPrefix())
	})

	t.Run("with range after prefix clears the prefix flag", func(t *testing.T) {
		cmp := base.WithPrefix().WithRange("zzz")
		end, ok := cmp.RangeEnd()
		assert.True(t, ok)
		assert.Equal(t, "zzz", end)
		assert.False(t, cmp.IsPrefix())
	})

	t.Run("with an empty range end compares the single key", func(t *testing.T) {
		cmp := base.WithPrefix().WithRange("")
		end, ok := cmp.RangeEnd()
		assert.False(t, ok)
		assert.Empty(t, end)
		assert.False(t, cmp.IsPrefix())
		assert.Equal(t, base, cmp)
		assert.Equal(t, `create_revision("service/") = "0"`, cmp.String())
		assert.Empty(t, encodeComparison(cmp).RangeEnd)
	})
}

func TestComparisonString(t *testing.T) {
	cmp, err := NewComparison("lock/A", Equal, "0", CreateRevision)
	require.NoError(t, err)
	assert.Equal(t, `create_revision("lock/A") = "0"`, cmp.String())
	assert.Equal(t, `create_revision(["lock/A", "lock/B")) = "0" prefix=true`, cmp.WithPrefix().String())

	assert.Equal(t, "!=", NotEqual.String())
	assert.Equal(t, "Operator(9)", Operator(9).String())
	assert.Equal(t, "lease", Lease.String())
	assert.Equal(t, "Target(9)", Target(9).String())
}
