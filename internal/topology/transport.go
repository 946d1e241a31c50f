// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topology

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sirseerhq/topology-query/internal/version"
	"go.uber.org/zap"
)

// userAgentTransport identifies the client and caps the response size.
type userAgentTransport struct {
	base     http.RoundTripper
	maxBytes int64
}

// RoundTrip implements http.RoundTripper
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/xml, text/xml")

	zap.S().Debugw("registry request", "method", req.Method, "url", req.URL.String())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil && t.maxBytes > 0 {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      t.maxBytes,
		}
	}

	return resp, nil
}

// responseTooLargeError is returned once a body exceeds the configured cap.
type responseTooLargeError struct {
	limit int64
}

func (e *responseTooLargeError) Error() string {
	return fmt.Sprintf("response size exceeded limit of %d bytes", e.limit)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		// Distinguish a body of exactly limit bytes from an oversized one
		var probe [1]byte
		if n, _ := lr.ReadCloser.Read(probe[:]); n == 0 {
			return 0, io.EOF
		}
		return 0, &responseTooLargeError{limit: lr.limit}
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}
