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
	"strconv"

	gerrors "github.com/tochemey/etcdio/errors"
)

// Operator is the relation a Comparison checks between the stored field and its target value.
type Operator int

const (
	// Equal holds when the stored field equals the target value.
	Equal Operator = iota
	// Greater holds when the stored field is greater than the target value.
	Greater
	// Less holds when the stored field is less than the target value.
	Less
	// NotEqual holds when the stored field differs from the target value.
	NotEqual
)

// String returns the etcd notation of the operator.
func (o Operator) String() string {
	switch o {
	case Equal:
		return "="
	case Greater:
		return ">"
	case Less:
		return "<"
	case NotEqual:
		return "!="
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

func (o Operator) valid() bool {
	return o >= Equal && o <= NotEqual
}

// Target selects which field of the stored record a Comparison reads.
type Target int

const (
	// Version is the number of modifications since the key was created.
	Version Target = iota
	// CreateRevision is the store revision at which the key was created. It is 0 for a missing key.
	CreateRevision
	// ModRevision is the store revision of the last modification of the key.
	ModRevision
	// Value is the raw stored value.
	Value
	// Lease is the ID of the lease attached to the key. It is 0 when there is none.
	Lease
)

// String returns the name of the target.
func (t Target) String() string {
	switch t {
	case Version:
		return "version"
	case CreateRevision:
		return "create_revision"
	case ModRevision:
		return "mod_revision"
	case Value:
		return "value"
	case Lease:
		return "lease"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

func (t Target) valid() bool {
	return t >= Version && t <= Lease
}

// numeric reports whether the target value of t must be an integer.
func (t Target) numeric() bool {
	return t != Value
}

// Comparison is a single precondition of a Transaction.
//
// A Comparison is an immutable value: WithRange and WithPrefix return copies and
// leave the receiver untouched.
type Comparison struct {
	key      string
	operator Operator
	target   Target
	value    string
	number   int64
	rangeEnd string
	hasRange bool
	prefix   bool
}

// NewComparison creates a Comparison checking the given target field of key
// against value using operator.
//
// For every target but Value the value must parse as a signed 64-bit integer;
// malformed input is rejected with an error wrapping errors.ErrValidation.
func NewComparison(key string, operator Operator, value string, target Target) (Comparison, error) {
	if !operator.valid() {
		return Comparison{}, gerrors.NewErrValidation("operator", fmt.Sprintf("%d is not supported", int(operator)))
	}

	if !target.valid() {
		return Comparison{}, gerrors.NewErrValidation("target", fmt.Sprintf("%d is not supported", int(target)))
	}

	cmp := Comparison{
		key:      key,
		operator: operator,
		target:   target,
		value:    value,
	}

	if target.numeric() {
		number, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Comparison{}, gerrors.NewErrValidation("target value", fmt.Sprintf("%q must be an integer for %s", value, target))
		}
		cmp.number = number
	}

	return cmp, nil
}

// WithRange returns a copy of the comparison applying to every key in [key, end).
// An empty end clears any range and the copy compares the single key.
func (c Comparison) WithRange(end string) Comparison {
	if end == "" {
		c.rangeEnd = ""
		c.hasRange = false
		c.prefix = false
		return c
	}

	c.rangeEnd = end
	c.hasRange = true
	c.prefix = false
	return c
}

// WithPrefix returns a copy of the comparison applying to every key prefixed by its key.
func (c Comparison) WithPrefix() Comparison {
	c.rangeEnd = prefixEnd(c.key)
	c.hasRange = true
	c.prefix = true
	return c
}

// Key returns the compared key.
func (c Comparison) Key() string {
	return c.key
}

// Operator returns the comparison operator.
func (c Comparison) Operator() Operator {
	return c.operator
}

// Target returns the compared field.
func (c Comparison) Target() Target {
	return c.target
}

// Value returns the target value as given to NewComparison.
func (c Comparison) Value() string {
	return c.value
}

// RangeEnd returns the exclusive end of the compared range, if any.
func (c Comparison) RangeEnd() (string, bool) {
	return c.rangeEnd, c.hasRange
}

// IsPrefix reports whether the range end was derived from the key prefix.
func (c Comparison) IsPrefix() bool {
	return c.prefix
}

// String implements fmt.Stringer.
func (c Comparison) String() string {
	if !c.hasRange {
		return fmt.Sprintf("%s(%q) %s %q", c.target, c.key, c.operator, c.value)
	}
	return fmt.Sprintf("%s([%q, %q)) %s %q prefix=%t", c.target, c.key, c.rangeEnd, c.operator, c.value, c.prefix)
}
