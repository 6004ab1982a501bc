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
	"errors"
	"time"

	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/concurrency"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/etcdio/errors"
	imetric "github.com/tochemey/etcdio/internal/metric"
	"github.com/tochemey/etcdio/internal/telemetry"
	"github.com/tochemey/etcdio/log"
	"github.com/tochemey/etcdio/txn"
)

// Client runs simple key-value calls, locks and atomic transactions
// against an etcd cluster.
//
// Client is safe for concurrent use.
type Client struct {
	config    *Config
	connector connector
	logger    log.Logger
	metric    *imetric.CoordinatorMetric
	closed    *atomic.Bool
}

// New creates a Client for the given endpoints.
// No connection is opened until the first call.
func New(endpoints []string, opts ...Option) (*Client, error) {
	return NewWithConfig(NewConfig(endpoints, opts...))
}

// NewWithConfig creates a Client from a prepared configuration.
func NewWithConfig(config *Config) (*Client, error) {
	return newClient(config, dial, closeClient)
}

// Connect creates a Client for a single address and checks the cluster answers.
func Connect(ctx context.Context, address string, opts ...Option) (*Client, error) {
	client, err := New([]string{address}, opts...)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx); err != nil {
		return nil, errors.Join(err, client.Close())
	}
	return client, nil
}

func newClient(config *Config, dial dialFunc, closeFunc closeFunc) (*Client, error) {
	if config == nil {
		return nil, errors.New("coordinator config is required")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var providerOpts []imetric.Option
	if config.MeterProvider != nil {
		providerOpts = append(providerOpts, imetric.WithMeterProvider(config.MeterProvider))
	}

	coordinatorMetric, err := imetric.NewCoordinatorMetric(imetric.NewProvider(providerOpts...).Meter())
	if err != nil {
		return nil, err
	}

	return &Client{
		config:    config,
		connector: newConnector(config, dial, closeFunc),
		logger:    config.Logger,
		metric:    coordinatorMetric,
		closed:    atomic.NewBool(false),
	}, nil
}

// Ping opens a connection and checks the first endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "Ping", true, func(ctx context.Context, client *clientv3.Client) error {
		_, err := client.Status(ctx, c.config.Endpoints[0])
		return err
	})
}

// Put writes value under key.
func (c *Client) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return gerrors.NewErrValidation("key", "must not be empty")
	}

	return c.call(ctx, "Put", true, func(ctx context.Context, client *clientv3.Client) error {
		_, err := client.Put(ctx, key, value)
		return err
	}, attribute.String("key", key))
}

// Get reads the value stored under key. found is false when the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (value string, found bool, err error) {
	if key == "" {
		return "", false, gerrors.NewErrValidation("key", "must not be empty")
	}

	err = c.call(ctx, "Get", true, func(ctx context.Context, client *clientv3.Client) error {
		resp, err := client.Get(ctx, key)
		if err != nil {
			return err
		}

		if len(resp.Kvs) == 0 {
			return nil
		}

		value, found = string(resp.Kvs[0].Value), true
		return nil
	}, attribute.String("key", key))
	return value, found, err
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return gerrors.NewErrValidation("key", "must not be empty")
	}

	return c.call(ctx, "Delete", true, func(ctx context.Context, client *clientv3.Client) error {
		_, err := client.Delete(ctx, key)
		return err
	}, attribute.String("key", key))
}

// Lock acquires the named distributed lock and returns the key the lock is held under.
// It blocks until the lock is acquired or ctx is done. The lock is released by Unlock
// or when its lease expires after the configured LockTTL.
func (c *Client) Lock(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", gerrors.NewErrValidation("name", "must not be empty")
	}

	var key string
	err := c.call(ctx, "Lock", false, func(ctx context.Context, client *clientv3.Client) error {
		lease, err := client.Grant(ctx, c.config.lockTTLSeconds())
		if err != nil {
			return err
		}

		session, err := concurrency.NewSession(client, concurrency.WithLease(lease.ID), concurrency.WithContext(ctx))
		if err != nil {
			c.revoke(ctx, client, lease.ID)
			return err
		}

		mutex := concurrency.NewMutex(session, name)
		if err := mutex.Lock(ctx); err != nil {
			session.Orphan()
			c.revoke(ctx, client, lease.ID)
			return err
		}

		// the lease TTL bounds the lock once the keep-alive stops
		session.Orphan()
		key = mutex.Key()
		return nil
	}, attribute.String("name", name))
	if err != nil {
		return "", err
	}

	c.logger.Debugf("lock=%s acquired key=%s", name, key)
	return key, nil
}

// revoke drops a lock lease. ctx may already be done, so the revocation gets its own timeout.
func (c *Client) revoke(ctx context.Context, client *clientv3.Client, id clientv3.LeaseID) {
	revokeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.Timeout)
	defer cancel()

	if _, err := client.Revoke(revokeCtx, id); err != nil {
		c.logger.Debugf("failed to revoke lock lease=%d: %v", id, err)
	}
}

// Unlock releases the lock held under key, as returned by Lock.
func (c *Client) Unlock(ctx context.Context, key string) error {
	if key == "" {
		return gerrors.NewErrValidation("key", "must not be empty")
	}

	return c.call(ctx, "Unlock", true, func(ctx context.Context, client *clientv3.Client) error {
		_, err := client.Delete(ctx, key)
		return err
	}, attribute.String("key", key))
}

// Submit runs the transaction atomically. A transaction whose comparisons
// do not hold is not an error: the returned Result has Succeeded set to false.
func (c *Client) Submit(ctx context.Context, transaction txn.Transaction) (*txn.Result, error) {
	request, err := txn.Encode(transaction)
	if err != nil {
		return nil, err
	}

	var result *txn.Result
	err = c.call(ctx, "Submit", true, func(ctx context.Context, client *clientv3.Client) error {
		resp, err := client.Txn(ctx).
			If(request.Compares...).
			Then(request.Then...).
			Else(request.Else...).
			Commit()
		if err != nil {
			return err
		}

		if result, err = txn.Decode(resp); err != nil {
			return err
		}

		c.metric.TxnCount().Add(ctx, 1, metric.WithAttributes(attribute.Bool("succeeded", result.Succeeded)))
		return nil
	}, attribute.Int("comparisons", len(request.Compares)))
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("transaction submitted succeeded=%t revision=%d", result.Succeeded, result.Revision)
	return result, nil
}

// Close releases the connections held by the Client. Further calls fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.connector.close()
}

// call runs fn on an acquired connection, bounded by the configured Timeout when timed is set.
func (c *Client) call(ctx context.Context, method string, timed bool, fn func(context.Context, *clientv3.Client) error, attrs ...attribute.KeyValue) error {
	if c.closed.Load() {
		return gerrors.ErrClientClosed
	}

	if ctx == nil {
		ctx = c.config.Context
	}

	if timed {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	ctx, span := telemetry.SpanContext(ctx, method, append(attrs, attribute.String("request_id", requestID))...)
	defer span.End()

	logger := c.logger.With("method", method, "request_id", requestID)
	methodAttr := metric.WithAttributes(attribute.String("method", method))
	start := time.Now()

	err := c.do(ctx, fn)
	c.metric.CallDuration().Record(ctx, float64(time.Since(start).Milliseconds()), methodAttr)
	if err != nil {
		c.metric.FailureCount().Add(ctx, 1, methodAttr)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		logger.Errorf("etcd call failed: %v", err)
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, fn func(context.Context, *clientv3.Client) error) error {
	client, release, err := c.connector.acquire(ctx)
	if err != nil {
		return classify(err)
	}
	defer release()

	return classify(fn(ctx, client))
}
