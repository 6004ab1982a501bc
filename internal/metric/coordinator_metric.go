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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// CoordinatorMetric defines the coordinator instruments
type CoordinatorMetric struct {
	txnCount     metric.Int64Counter
	failureCount metric.Int64Counter
	callDuration metric.Float64Histogram
}

// NewCoordinatorMetric creates an instance of CoordinatorMetric
func NewCoordinatorMetric(meter metric.Meter) (*CoordinatorMetric, error) {
	coordinatorMetric := new(CoordinatorMetric)
	var err error
	if coordinatorMetric.txnCount, err = meter.Int64Counter(
		"etcdio_txn_count",
		metric.WithDescription("Total number of submitted transactions by outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create txnCount instrument, %v", err)
	}

	if coordinatorMetric.failureCount, err = meter.Int64Counter(
		"etcdio_call_failure_count",
		metric.WithDescription("Total number of failed remote calls"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %v", err)
	}

	if coordinatorMetric.callDuration, err = meter.Float64Histogram(
		"etcdio_call_duration",
		metric.WithDescription("Latency of remote calls in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create callDuration instrument, %v", err)
	}
	return coordinatorMetric, nil
}

// TxnCount returns the submitted transactions counter
func (x *CoordinatorMetric) TxnCount() metric.Int64Counter {
	return x.txnCount
}

// FailureCount returns the failed remote calls counter
func (x *CoordinatorMetric) FailureCount() metric.Int64Counter {
	return x.failureCount
}

// CallDuration returns the remote call latency histogram
func (x *CoordinatorMetric) CallDuration() metric.Float64Histogram {
	return x.callDuration
}
