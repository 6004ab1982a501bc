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
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"

	gerrors "github.com/tochemey/etcdio/errors"
)

// MaxDepth is the deepest nesting of transactions Encode accepts, the top-level
// transaction included.
const MaxDepth = 32

// Request is the wire form of a Transaction as expected by the etcd KV API.
type Request struct {
	// Compares holds the encoded preconditions.
	Compares []clientv3.Cmp
	// Then holds the encoded success branch.
	Then []clientv3.Op
	// Else holds the encoded failure branch.
	Else []clientv3.Op
}

// Op returns the request as a nested transaction operation.
func (r *Request) Op() clientv3.Op {
	return clientv3.OpTxn(r.Compares, r.Then, r.Else)
}

// Encode converts t into its wire form. Sub-transactions are encoded depth first.
//
// Encode fails with errors.ErrMaxDepthExceeded when t nests deeper than MaxDepth,
// and with errors.ErrInvariantViolation when a branch holds a nil Operation.
func Encode(t Transaction) (*Request, error) {
	return encode(t, 1)
}

// encode converts t found at the given nesting level, the top level being 1.
func encode(t Transaction, level int) (*Request, error) {
	if level > MaxDepth {
		return nil, gerrors.NewErrMaxDepthExceeded(level, MaxDepth)
	}

	compares := make([]clientv3.Cmp, 0, len(t.when))
	for _, cmp := range t.when {
		compares = append(compares, encodeComparison(cmp))
	}

	then, err := encodeOperations(t.then, level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode success branch: %w", err)
	}

	orElse, err := encodeOperations(t.orElse, level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode failure branch: %w", err)
	}

	return &Request{
		Compares: compares,
		Then:     then,
		Else:     orElse,
	}, nil
}

func encodeComparison(c Comparison) clientv3.Cmp {
	var cmp clientv3.Cmp
	switch c.target {
	case Version:
		cmp = clientv3.Compare(clientv3.Version(c.key), c.operator.String(), c.number)
	case CreateRevision:
		cmp = clientv3.Compare(clientv3.CreateRevision(c.key), c.operator.String(), c.number)
	case ModRevision:
		cmp = clientv3.Compare(clientv3.ModRevision(c.key), c.operator.String(), c.number)
	case Lease:
		cmp = clientv3.Compare(clientv3.LeaseValue(c.key), c.operator.String(), c.number)
	case Value:
		cmp = clientv3.Compare(clientv3.Value(c.key), c.operator.String(), c.value)
	}

	if c.hasRange {
		cmp = cmp.WithRange(c.rangeEnd)
	}
	return cmp
}

func encodeOperations(operations []Operation, level int) ([]clientv3.Op, error) {
	ops := make([]clientv3.Op, 0, len(operations))
	for index, operation := range operations {
		op, err := encodeOperation(operation, level)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", index, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func encodeOperation(operation Operation, level int) (clientv3.Op, error) {
	switch op := operation.(type) {
	case PutOp:
		return clientv3.OpPut(op.Key, op.Value), nil
	case GetOp:
		return clientv3.OpGet(op.Key, rangeOptions(op.RangeEnd)...), nil
	case DeleteOp:
		return clientv3.OpDelete(op.Key, rangeOptions(op.RangeEnd)...), nil
	case TxnOp:
		nested, err := encode(op.Txn, level+1)
		if err != nil {
			return clientv3.Op{}, err
		}
		return nested.Op(), nil
	case nil:
		return clientv3.Op{}, gerrors.NewErrInvariantViolation("operation has no variant set")
	default:
		return clientv3.Op{}, gerrors.NewErrInvariantViolation(fmt.Sprintf("unknown operation %T", operation))
	}
}

func rangeOptions(end string) []clientv3.OpOption {
	if end == "" {
		return nil
	}
	return []clientv3.OpOption{clientv3.WithRange(end)}
}
