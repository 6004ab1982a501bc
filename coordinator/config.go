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
	"crypto/tls"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/etcdio/internal/validation"
	"github.com/tochemey/etcdio/log"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultTimeout     = 5 * time.Second
	// defaultLockTTL matches the lease TTL the etcd lock service grants when none is given.
	defaultLockTTL = 60 * time.Second
)

// Config holds the coordinator configuration.
type Config struct {
	// Context specifies the execution context for etcd operations.
	// If nil, context.Background() will be used.
	Context context.Context
	// Endpoints is a list of etcd cluster endpoints.
	Endpoints []string
	// DialTimeout sets the timeout for establishing etcd connections.
	DialTimeout time.Duration
	// Timeout sets the timeout of every remote call but Lock, which waits
	// until the lock is acquired or the caller's context is done.
	Timeout time.Duration
	// LockTTL is the lease TTL bounding a lock acquired with Lock.
	LockTTL time.Duration
	// TLS configures client TLS (optional).
	TLS *tls.Config
	// Username sets the etcd authentication user (optional).
	Username string
	// Password sets the etcd authentication password (optional).
	Password string
	// Logger is used to log connection and call outcomes.
	Logger log.Logger
	// MeterProvider records the coordinator metrics. Defaults to the global provider.
	MeterProvider metric.MeterProvider
	// ReuseConnection keeps a single connection open for every call until Close.
	// By default, every call opens and closes its own connection.
	ReuseConnection bool
}

var _ validation.Validator = (*Config)(nil)

// NewConfig creates a sanitized Config for the given endpoints.
func NewConfig(endpoints []string, opts ...Option) *Config {
	config := &Config{Endpoints: endpoints}
	for _, opt := range opts {
		opt.Apply(config)
	}
	config.Sanitize()
	return config
}

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	chain := validation.New(validation.FailFast()).
		AddAssertion(len(c.Endpoints) > 0, "Endpoints must not be empty")

	for index, endpoint := range c.Endpoints {
		chain = chain.
			AddValidator(validation.NewEmptyStringValidator(fmt.Sprintf("Endpoints[%d]", index), endpoint)).
			AddValidator(validation.NewEndpointValidator(endpoint))
	}

	return chain.
		AddAssertion(c.DialTimeout > 0, "DialTimeout must be greater than 0").
		AddAssertion(c.Timeout > 0, "Timeout must be greater than 0").
		AddAssertion(c.LockTTL >= time.Second, "LockTTL must be at least 1s").
		AddAssertion(c.Logger != nil, "Logger is required").
		Validate()
}

// Sanitize fills the unset fields with their defaults.
func (c *Config) Sanitize() {
	if c.Context == nil {
		c.Context = context.Background()
	}

	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	if c.LockTTL == 0 {
		c.LockTTL = defaultLockTTL
	}

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
}

func (c *Config) lockTTLSeconds() int64 {
	seconds := int64(c.LockTTL.Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}
