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

import "slices"

// Transaction is an atomic compare-and-branch request.
//
// When every comparison holds the AndThen operations are applied, otherwise the
// OrElse operations are. An empty comparison list always holds.
//
// The zero value is an empty transaction ready to use. A Transaction is
// immutable: When, AndThen and OrElse return a new value holding its own copy of
// the given list.
type Transaction struct {
	when   []Comparison
	then   []Operation
	orElse []Operation
}

// New creates an empty Transaction.
func New() Transaction {
	return Transaction{}
}

// When returns a copy of the transaction with its preconditions set to comparisons.
func (t Transaction) When(comparisons ...Comparison) Transaction {
	t.when = slices.Clone(comparisons)
	return t
}

// AndThen returns a copy of the transaction with its success branch set to operations.
func (t Transaction) AndThen(operations ...Operation) Transaction {
	t.then = slices.Clone(operations)
	return t
}

// OrElse returns a copy of the transaction with its failure branch set to operations.
func (t Transaction) OrElse(operations ...Operation) Transaction {
	t.orElse = slices.Clone(operations)
	return t
}

// Comparisons returns the preconditions of the transaction.
func (t Transaction) Comparisons() []Comparison {
	return slices.Clone(t.when)
}

// Success returns the operations applied when every precondition holds.
func (t Transaction) Success() []Operation {
	return slices.Clone(t.then)
}

// Failure returns the operations applied when a precondition does not hold.
func (t Transaction) Failure() []Operation {
	return slices.Clone(t.orElse)
}

// Depth returns the nesting depth of the transaction. A transaction without
// sub-transactions has depth 1. Depths above MaxDepth are reported as MaxDepth+1.
func (t Transaction) Depth() int {
	return t.depth(MaxDepth + 1)
}

// depth walks the transaction one nesting level at a time and stops at limit.
// Branch lists shared by several sub-transactions are visited once per level.
func (t Transaction) depth(limit int) int {
	level := 1
	frontier := []Transaction{t}
	for level < limit {
		seen := make(map[*Operation]struct{})
		var next []Transaction
		for _, current := range frontier {
			for _, ops := range [][]Operation{current.then, current.orElse} {
				if len(ops) == 0 {
					continue
				}
				if _, ok := seen[&ops[0]]; ok {
					continue
				}
				seen[&ops[0]] = struct{}{}
				for _, op := range ops {
					if nested, ok := op.(TxnOp); ok {
						next = append(next, nested.Txn)
					}
				}
			}
		}

		if len(next) == 0 {
			break
		}
		frontier = next
		level++
	}
	return level
}
