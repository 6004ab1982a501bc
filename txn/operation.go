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

// Operation is one action of a transaction branch.
//
// The set of operations is closed: PutOp, GetOp, DeleteOp and TxnOp are the only
// implementations, and Encode switches over them exhaustively.
type Operation interface {
	isOperation()
}

// PutOp writes Value under Key.
type PutOp struct {
	Key   string
	Value string
}

// GetOp reads Key, or every key in [Key, RangeEnd) when RangeEnd is set.
type GetOp struct {
	Key      string
	RangeEnd string
}

// DeleteOp removes Key, or every key in [Key, RangeEnd) when RangeEnd is set.
type DeleteOp struct {
	Key      string
	RangeEnd string
}

// TxnOp runs a nested Transaction.
type TxnOp struct {
	Txn Transaction
}

func (PutOp) isOperation()    {}
func (GetOp) isOperation()    {}
func (DeleteOp) isOperation() {}
func (TxnOp) isOperation()    {}

var (
	_ Operation = PutOp{}
	_ Operation = GetOp{}
	_ Operation = DeleteOp{}
	_ Operation = TxnOp{}
)

// Put returns an operation writing value under key.
func Put(key, value string) PutOp {
	return PutOp{Key: key, Value: value}
}

// Get returns an operation reading key.
func Get(key string) GetOp {
	return GetOp{Key: key}
}

// GetRange returns an operation reading every key in [key, end).
func GetRange(key, end string) GetOp {
	return GetOp{Key: key, RangeEnd: end}
}

// GetPrefix returns an operation reading every key prefixed by key.
func GetPrefix(key string) GetOp {
	return GetOp{Key: key, RangeEnd: prefixEnd(key)}
}

// Delete returns an operation removing key.
func Delete(key string) DeleteOp {
	return DeleteOp{Key: key}
}

// DeletePrefix returns an operation removing every key prefixed by key.
func DeletePrefix(key string) DeleteOp {
	return DeleteOp{Key: key, RangeEnd: prefixEnd(key)}
}

// Nested returns an operation running t as a sub-transaction.
func Nested(t Transaction) TxnOp {
	return TxnOp{Txn: t}
}
