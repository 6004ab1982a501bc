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

package coordinator

import (
	"context"
	"sync"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type fakeKV struct {
	mu      sync.Mutex
	values  map[string]string
	deletes []string
	putErr  error
	getErr  error
	delErr  error
	txn     *fakeTxn
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Put(_ context.Context, key, value string, _ ...clientv3.OpOption) (*clientv3.PutResponse, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return &clientv3.PutResponse{}, nil
}

func (f *fakeKV) Get(_ context.Context, key string, _ ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	if !ok {
		return &clientv3.GetResponse{}, nil
	}
	return &clientv3.GetResponse{
		Kvs:   []*mvccpb.KeyValue{{Key: []byte(key), Value: []byte(value)}},
		Count: 1,
	}, nil
}

func (f *fakeKV) Delete(_ context.Context, key string, _ ...clientv3.OpOption) (*clientv3.DeleteResponse, error) {
	if f.delErr != nil {
		return nil, f.delErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	delete(f.values, key)
	return &clientv3.DeleteResponse{Deleted: 1}, nil
}

func (f *fakeKV) Compact(context.Context, int64, ...clientv3.CompactOption) (*clientv3.CompactResponse, error) {
	return &clientv3.CompactResponse{}, nil
}

func (f *fakeKV) Do(context.Context, clientv3.Op) (clientv3.OpResponse, error) {
	return clientv3.OpResponse{}, nil
}

func (f *fakeKV) Txn(context.Context) clientv3.Txn {
	if f.txn == nil {
		f.txn = &fakeTxn{}
	}
	return f.txn
}

type fakeTxn struct {
	cmps    []clientv3.Cmp
	thenOps []clientv3.Op
	elseOps []clientv3.Op
	resp    *clientv3.TxnResponse
	err     error
	commits int
}

func (f *fakeTxn) If(cmps ...clientv3.Cmp) clientv3.Txn {
	f.cmps = cmps
	return f
}

func (f *fakeTxn) Then(ops ...clientv3.Op) clientv3.Txn {
	f.thenOps = ops
	return f
}

func (f *fakeTxn) Else(ops ...clientv3.Op) clientv3.Txn {
	f.elseOps = ops
	return f
}

func (f *fakeTxn) Commit() (*clientv3.TxnResponse, error) {
	f.commits++
	if f.err != nil {
		return nil, f.err
	}
	if f.resp == nil {
		return &clientv3.TxnResponse{}, nil
	}
	return f.resp, nil
}

type fakeMaintenance struct {
	clientv3.Maintenance
	statusErr error
}

func (f *fakeMaintenance) Status(context.Context, string) (*clientv3.StatusResponse, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &clientv3.StatusResponse{}, nil
}

// fakeDialer hands out a client backed by the given fakes and counts dials and closes.
type fakeDialer struct {
	mu      sync.Mutex
	kv      clientv3.KV
	maint   clientv3.Maintenance
	lease   clientv3.Lease
	dialErr error
	dials   int
	closes  int
}

func (f *fakeDialer) dial(context.Context, *Config) (*clientv3.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dials++
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	client := clientv3.NewCtxClient(context.Background())
	client.KV = f.kv
	client.Maintenance = f.maint
	client.Lease = f.lease
	return client, nil
}

func (f *fakeDialer) close(*clientv3.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeDialer) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dials, f.closes
}

// fakeLease grants a fixed lease and records revocations along with the state
// of the context they were issued with.
type fakeLease struct {
	clientv3.Lease
	keepAliveErr error

	mu         sync.Mutex
	revoked    []clientv3.LeaseID
	revokeErrs []error
}

func (f *fakeLease) Grant(context.Context, int64) (*clientv3.LeaseGrantResponse, error) {
	return &clientv3.LeaseGrantResponse{ID: 42, TTL: 60}, nil
}

func (f *fakeLease) KeepAlive(ctx context.Context, _ clientv3.LeaseID) (<-chan *clientv3.LeaseKeepAliveResponse, error) {
	if f.keepAliveErr != nil {
		return nil, f.keepAliveErr
	}
	ch := make(chan *clientv3.LeaseKeepAliveResponse)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeLease) Revoke(ctx context.Context, id clientv3.LeaseID) (*clientv3.LeaseRevokeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, id)
	f.revokeErrs = append(f.revokeErrs, ctx.Err())
	return &clientv3.LeaseRevokeResponse{}, nil
}

func (f *fakeLease) revocations() ([]clientv3.LeaseID, []error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked, f.revokeErrs
}

// recordingMeterProvider captures the contexts the transaction counter is fed with.
type recordingMeterProvider struct {
	noop.MeterProvider
	counter *recordingCounter
}

func newRecordingMeterProvider() *recordingMeterProvider {
	return &recordingMeterProvider{counter: &recordingCounter{}}
}

func (p *recordingMeterProvider) Meter(string, ...metric.MeterOption) metric.Meter {
	return recordingMeter{counter: p.counter}
}

type recordingMeter struct {
	noop.Meter
	counter *recordingCounter
}

func (m recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == "etcdio_txn_count" {
		return m.counter, nil
	}
	return noop.Int64Counter{}, nil
}

type recordingCounter struct {
	noop.Int64Counter
	mu       sync.Mutex
	contexts []context.Context
}

func (c *recordingCounter) Add(ctx context.Context, _ int64, _ ...metric.AddOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts = append(c.contexts, ctx)
}

func (c *recordingCounter) recorded() []context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contexts
}
