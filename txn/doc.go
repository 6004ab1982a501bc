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

// Package txn builds atomic conditional transactions for etcd.
//
// A Transaction bundles a list of Comparison preconditions with two branches of
// Operation values: the operations applied when every comparison holds, and the
// operations applied otherwise. All builder values are immutable: every method
// that changes something returns a new value and never mutates its receiver, so
// a base Comparison or Transaction can be reused freely.
//
//	cmp, err := txn.NewComparison("lock/A", txn.Equal, "0", txn.CreateRevision)
//	if err != nil {
//		// malformed input, nothing was sent
//	}
//	t := txn.New().
//		When(cmp).
//		AndThen(txn.Put("lock/A", "owner-1")).
//		OrElse(txn.Get("lock/A"))
//
// Encode turns a Transaction into the compare and request operations expected
// by the etcd v3 KV API, and Decode maps the etcd response back into a Result.
// Nested transactions are encoded depth first and are limited to MaxDepth
// levels.
//
// Builder values are safe for concurrent use since they are never mutated.
package txn
