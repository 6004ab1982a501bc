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
	"errors"
	"fmt"

	"go.etcd.io/etcd/api/v3/etcdserverpb"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"

	gerrors "github.com/tochemey/etcdio/errors"
)

// Result is the outcome of a submitted Transaction.
type Result struct {
	// Succeeded reports whether every precondition held, i.e. which branch ran.
	// A false value is a normal outcome, not an error.
	Succeeded bool
	// Revision is the store revision after the transaction was applied.
	Revision int64
	// Responses holds one entry per operation of the branch that ran, in order.
	Responses []Response
}

// Response is the outcome of a single Operation. Its concrete type mirrors the
// operation: PutResponse, GetResponse, DeleteResponse or TxnResponse.
type Response interface {
	isResponse()
}

// PutResponse is the outcome of a PutOp.
type PutResponse struct{}

// GetResponse is the outcome of a GetOp.
type GetResponse struct {
	// KVs holds the matching records.
	KVs []*mvccpb.KeyValue
	// Count is the number of keys in the requested range.
	Count int64
	// More reports whether more keys were available than returned.
	More bool
}

// DeleteResponse is the outcome of a DeleteOp.
type DeleteResponse struct {
	// Deleted is the number of removed keys.
	Deleted int64
}

// TxnResponse is the outcome of a TxnOp.
type TxnResponse struct {
	Result Result
}

func (PutResponse) isResponse()    {}
func (GetResponse) isResponse()    {}
func (DeleteResponse) isResponse() {}
func (TxnResponse) isResponse()    {}

// Decode converts an etcd transaction response into a Result.
func Decode(resp *clientv3.TxnResponse) (*Result, error) {
	if resp == nil {
		return nil, gerrors.NewErrRemote(errors.New("empty transaction response"))
	}

	result, err := decode((*etcdserverpb.TxnResponse)(resp))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func decode(resp *etcdserverpb.TxnResponse) (Result, error) {
	result := Result{
		Succeeded: resp.GetSucceeded(),
		Revision:  resp.GetHeader().GetRevision(),
		Responses: make([]Response, 0, len(resp.GetResponses())),
	}

	for index, op := range resp.GetResponses() {
		response, err := decodeResponse(op)
		if err != nil {
			return Result{}, fmt.Errorf("response %d: %w", index, err)
		}
		result.Responses = append(result.Responses, response)
	}

	return result, nil
}

func decodeResponse(op *etcdserverpb.ResponseOp) (Response, error) {
	switch r := op.GetResponse().(type) {
	case *etcdserverpb.ResponseOp_ResponsePut:
		return PutResponse{}, nil
	case *etcdserverpb.ResponseOp_ResponseRange:
		return GetResponse{
			KVs:   r.ResponseRange.GetKvs(),
			Count: r.ResponseRange.GetCount(),
			More:  r.ResponseRange.GetMore(),
		}, nil
	case *etcdserverpb.ResponseOp_ResponseDeleteRange:
		return DeleteResponse{Deleted: r.ResponseDeleteRange.GetDeleted()}, nil
	case *etcdserverpb.ResponseOp_ResponseTxn:
		nested, err := decode(r.ResponseTxn)
		if err != nil {
			return nil, err
		}
		return TxnResponse{Result: nested}, nil
	default:
		return nil, gerrors.NewErrRemote(fmt.Errorf("unexpected response type %T", r))
	}
}
