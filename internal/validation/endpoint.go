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

package validation

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

var errFmt = "invalid endpoint=(%s): %w"

// EndpointValidator checks an etcd client endpoint.
//
// Accepted forms are host:port, http://host:port, https://host:port and
// unix:// or unixs:// socket paths.
type EndpointValidator struct {
	endpoint string
}

var _ Validator = (*EndpointValidator)(nil)

// NewEndpointValidator creates an instance of EndpointValidator
func NewEndpointValidator(endpoint string) *EndpointValidator {
	return &EndpointValidator{endpoint: endpoint}
}

// Validate implements Validator.
func (v *EndpointValidator) Validate() error {
	endpoint := strings.TrimSpace(v.endpoint)
	if endpoint == "" {
		return fmt.Errorf(errFmt, v.endpoint, errors.New("endpoint is empty"))
	}

	hostport := endpoint
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf(errFmt, v.endpoint, err)
		}

		switch u.Scheme {
		case "unix", "unixs":
			if u.Host == "" && u.Path == "" {
				return fmt.Errorf(errFmt, v.endpoint, errors.New("socket path is empty"))
			}
			return nil
		case "http", "https":
			hostport = u.Host
		default:
			return fmt.Errorf(errFmt, v.endpoint, fmt.Errorf("unsupported scheme %q", u.Scheme))
		}
	}

	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return fmt.Errorf(errFmt, v.endpoint, err)
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf(errFmt, v.endpoint, err)
	}

	if host == "" || portNum > 65535 || portNum <= 0 {
		return fmt.Errorf(errFmt, v.endpoint, errors.New("invalid host or port"))
	}

	return nil
}
