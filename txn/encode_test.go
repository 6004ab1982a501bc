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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/etcdserverpb"

	gerrors "github.com/tochemey/etcdio/errors"
)

func mustComparison(t *testing.T, key string, operator Operator, value string, target Target) Comparison {
	t.Helper()
	cmp, err := NewComparison(key, operator, value, target)
	require.NoError(t, err)
	return cmp
}

func TestEncodeComparison(t *testing.T) {
	testCases := []struct {
		name       string
		comparison Comparison
		target     etcdserverpb.Compare_CompareTarget
		result     etcdserverpb.Compare_CompareResult
		union      any
	}{
		{
			name:       "version",
			comparison: mustComparison(t, "k", Equal, "3", Version),
			target:     etcdserverpb.Compare_VERSION,
			result:     etcdserverpb.Compare_EQUAL,
			union:      &etcdserverpb.Compare_Version{Version: 3},
		},
		{
			name:       "create revision",
			comparison: mustComparison(t, "k", Greater, "0", CreateRevision),
			target:     etcdserverpb.Compare_CREATE,
			result:     etcdserverpb.Compare_GREATER,
			union:      &etcdserverpb.Compare_CreateRevision{CreateRevision: 0},
		},
		{
			name:       "mod revision",
			comparison: mustComparison(t, "k", Less, "10", ModRevision),
			target:     etcdserverpb.Compare_MOD,
			result:     etcdserverpb.Compare_LESS,
			union:      &etcdserverpb.Compare_ModRevision{ModRevision: 10},
		},
		{
			name:       "value",
			comparison: mustComparison(t, "k", NotEqual, "owner-1", Value),
			target:     etcdserverpb.Compare_VALUE,
			result:     etcdserverpb.Compare_NOT_EQUAL,
			union:      &etcdserverpb.Compare_Value{Value: []byte("owner-1")},
		},
		{
			name:       "lease",
			comparison: mustComparison(t, "k", Equal, "7587", Lease),
			target:     etcdserverpb.Compare_LEASE,
			result:     etcdserverpb.Compare_EQUAL,
			union:      &etcdserverpb.Compare_Lease{Lease: 7587},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmp := encodeComparison(tc.comparison)
			assert.Equal(t, []byte("k"), cmp.KeyBytes())
			assert.Equal(t, tc.target, cmp.Target)
			assert.Equal(t, tc.result, cmp.Result)
			assert.Equal(t, tc.union, cmp.TargetUnion)
			assert.Empty(t, cmp.RangeEnd)
		})
	}

	t.Run("ranges", func(t *testing.T) {
		base := mustComparison(t, "a\xff", Equal, "0", Version)
		assert.Equal(t, []byte("b"), encodeComparison(base.WithPrefix()).RangeEnd)
		assert.Equal(t, []byte("z"), encodeComparison(base.WithRange("z")).RangeEnd)
	})
}

func TestEncode(t *testing.T) {
	t.Run("empty transaction", func(t *testing.T) {
		req, err := Encode(New())
		require.NoError(t, err)
		assert.Empty(t, req.Compares)
		assert.Empty(t, req.Then)
		assert.Empty(t, req.Else)
	})

	t.Run("nested success branch and delete failure branch", func(t *testing.T) {
		nested := New().
			When(mustComparison(t, "inner", Equal, "v", Value)).
			AndThen(Put("inner", "w"), GetPrefix("inner/")).
			OrElse(Delete("inner"))

		transaction := New().
			When(
				mustComparison(t, "a", Equal, "0", CreateRevision),
				mustComparison(t, "b", Greater, "1", Version).WithPrefix(),
			).
			AndThen(Nested(nested)).
			OrElse(Delete("c"))

		req, err := Encode(transaction)
		require.NoError(t, err)

		require.Len(t, req.Compares, 2)
		assert.Equal(t, []byte("a"), req.Compares[0].KeyBytes())
		assert.Equal(t, []byte("b"), req.Compares[1].KeyBytes())
		assert.Equal(t, []byte("c"), req.Compares[1].RangeEnd)

		require.Len(t, req.Then, 1)
		require.True(t, req.Then[0].IsTxn())
		cmps, thenOps, elseOps := req.Then[0].Txn()
		require.Len(t, cmps, 1)
		assert.Equal(t, etcdserverpb.Compare_VALUE, cmps[0].Target)
		require.Len(t, thenOps, 2)
		assert.True(t, thenOps[0].IsPut())
		assert.Equal(t, []byte("inner"), thenOps[0].KeyBytes())
		assert.Equal(t, []byte("w"), thenOps[0].ValueBytes())
		assert.True(t, thenOps[1].IsGet())
		assert.Equal(t, []byte("inner/"), thenOps[1].KeyBytes())
		assert.Equal(t, []byte("inner0"), thenOps[1].RangeBytes())
		require.Len(t, elseOps, 1)
		assert.True(t, elseOps[0].IsDelete())

		require.Len(t, req.Else, 1)
		assert.True(t, req.Else[0].IsDelete())
		assert.Equal(t, []byte("c"), req.Else[0].KeyBytes())
		assert.Empty(t, req.Else[0].RangeBytes())
	})

	t.Run("encoding leaves the transaction reusable", func(t *testing.T) {
		transaction := New().AndThen(Put("a", "1")).OrElse(Get("a"))
		first, err := Encode(transaction)
		require.NoError(t, err)
		second, err := Encode(transaction)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("nil operation", func(t *testing.T) {
		_, err := Encode(New().AndThen(Put("a", "1"), nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrInvariantViolation)
		assert.Contains(t, err.Error(), "success branch")

		_, err = Encode(New().OrElse(nil))
		assert.ErrorIs(t, err, gerrors.ErrInvariantViolation)
		assert.Contains(t, err.Error(), "failure branch")
	})

	t.Run("nil operation in nested transaction", func(t *testing.T) {
		_, err := Encode(New().AndThen(Nested(New().OrElse(nil))))
		assert.ErrorIs(t, err, gerrors.ErrInvariantViolation)
	})

	t.Run("pointer operation", func(t *testing.T) {
		_, err := Encode(New().AndThen(&PutOp{Key: "a"}))
		assert.ErrorIs(t, err, gerrors.ErrInvariantViolation)
	})

	t.Run("depth limit", func(t *testing.T) {
		transaction := New().AndThen(Put("leaf", "1"))
		for transaction.Depth() < MaxDepth {
			transaction = New().AndThen(Nested(transaction))
		}

		_, err := Encode(transaction)
		require.NoError(t, err)

		_, err = Encode(New().OrElse(Nested(transaction)))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrMaxDepthExceeded)
		assert.ErrorIs(t, err, gerrors.ErrValidation)
	})

	t.Run("very deep chain is rejected at the limit", func(t *testing.T) {
		transaction := New().AndThen(Put("leaf", "1"))
		for range 100_000 {
			transaction = New().AndThen(Nested(transaction))
		}

		request, err := Encode(transaction)
		require.ErrorIs(t, err, gerrors.ErrMaxDepthExceeded)
		assert.Nil(t, request)
		assert.Contains(t, err.Error(), "(depth=33, limit=32)")
	})

	t.Run("shared sub-transaction in both branches is rejected quickly", func(t *testing.T) {
		transaction := New().AndThen(Put("leaf", "1"))
		for range 64 {
			transaction = New().AndThen(Nested(transaction)).OrElse(Nested(transaction))
		}

		done := make(chan error, 1)
		go func() {
			_, err := Encode(transaction)
			done <- err
		}()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, gerrors.ErrMaxDepthExceeded)
		case <-time.After(5 * time.Second):
			t.Fatal("encoding a shared deep transaction did not stop at the depth limit")
		}
	})
}
