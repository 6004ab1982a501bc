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
	"fmt"
	"sync"

	clientv3 "go.etcd.io/etcd/client/v3"

	gerrors "github.com/tochemey/etcdio/errors"
	"github.com/tochemey/etcdio/log"
)

// dialFunc opens a verified connection to the cluster.
type dialFunc func(ctx context.Context, config *Config) (*clientv3.Client, error)

// closeFunc releases a connection.
type closeFunc func(*clientv3.Client) error

// connector hands out connections to the remote calls.
type connector interface {
	// acquire returns a connection and the function releasing it once the call is done.
	acquire(ctx context.Context) (*clientv3.Client, func(), error)
	// close releases every connection held by the connector.
	close() error
}

// dial connects to the configured endpoints and checks the first one answers.
func dial(ctx context.Context, config *Config) (*clientv3.Client, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   config.Endpoints,
		DialTimeout: config.DialTimeout,
		TLS:         config.TLS,
		Username:    config.Username,
		Password:    config.Password,
		Context:     config.Context,
	})
	if err != nil {
		return nil, gerrors.NewErrConnection(err)
	}

	statusCtx, cancel := context.WithTimeout(ctx, config.DialTimeout)
	defer cancel()

	if _, err := client.Status(statusCtx, config.Endpoints[0]); err != nil {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close etcd client: %w", cerr))
		}
		return nil, gerrors.NewErrConnection(fmt.Errorf("failed to connect to etcd: %w", err))
	}

	return client, nil
}

func closeClient(client *clientv3.Client) error {
	return client.Close()
}

// perCallConnector opens a fresh connection for every call and closes it afterwards.
type perCallConnector struct {
	config    *Config
	dial      dialFunc
	closeFunc closeFunc
	logger    log.Logger
}

var _ connector = (*perCallConnector)(nil)

func (x *perCallConnector) acquire(ctx context.Context) (*clientv3.Client, func(), error) {
	client, err := x.dial(ctx, x.config)
	if err != nil {
		return nil, nil, err
	}

	x.logger.Debugf("connected to etcd endpoints=%v", x.config.Endpoints)
	return client, func() {
		if err := x.closeFunc(client); err != nil {
			x.logger.Debugf("failed to close etcd connection: %v", err)
		}
	}, nil
}

func (x *perCallConnector) close() error {
	return nil
}

// sharedConnector lazily opens one connection and reuses it for every call.
type sharedConnector struct {
	config    *Config
	dial      dialFunc
	closeFunc closeFunc
	logger    log.Logger

	mu     sync.Mutex
	client *clientv3.Client
}

var _ connector = (*sharedConnector)(nil)

func (x *sharedConnector) acquire(ctx context.Context) (*clientv3.Client, func(), error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.client == nil {
		client, err := x.dial(ctx, x.config)
		if err != nil {
			return nil, nil, err
		}
		x.logger.Debugf("connected to etcd endpoints=%v", x.config.Endpoints)
		x.client = client
	}

	return x.client, func() {}, nil
}

func (x *sharedConnector) close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.client == nil {
		return nil
	}

	client := x.client
	x.client = nil
	if err := x.closeFunc(client); err != nil {
		return fmt.Errorf("failed to close etcd client: %w", err)
	}
	return nil
}

func newConnector(config *Config, dial dialFunc, closeFunc closeFunc) connector {
	if config.ReuseConnection {
		return &sharedConnector{
			config:    config,
			dial:      dial,
			closeFunc: closeFunc,
			logger:    config.Logger,
		}
	}

	return &perCallConnector{
		config:    config,
		dial:      dial,
		closeFunc: closeFunc,
		logger:    config.Logger,
	}
}
