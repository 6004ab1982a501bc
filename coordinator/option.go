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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/etcdio/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

// Apply applies the options to Config
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithContext sets the context every call derives from when given a nil context
func WithContext(ctx context.Context) Option {
	return OptionFunc(func(config *Config) {
		config.Context = ctx
	})
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.Logger = logger
	})
}

// WithDialTimeout sets the connection establishment timeout
func WithDialTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.DialTimeout = timeout
	})
}

// WithTimeout sets the remote call timeout
func WithTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.Timeout = timeout
	})
}

// WithLockTTL sets the lease TTL of acquired locks
func WithLockTTL(ttl time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.LockTTL = ttl
	})
}

// WithTLS sets the client TLS configuration
func WithTLS(tlsConfig *tls.Config) Option {
	return OptionFunc(func(config *Config) {
		config.TLS = tlsConfig
	})
}

// WithAuth sets the etcd credentials
func WithAuth(username, password string) Option {
	return OptionFunc(func(config *Config) {
		config.Username = username
		config.Password = password
	})
}

// WithMeterProvider sets the meter provider recording the coordinator metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.MeterProvider = provider
	})
}

// WithConnectionReuse shares a single connection between calls
func WithConnectionReuse() Option {
	return OptionFunc(func(config *Config) {
		config.ReuseConnection = true
	})
}
