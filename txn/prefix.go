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

// noUpperBound is the range end etcd interprets as "every key from the start key".
var noUpperBound = []byte{0}

// PrefixEnd returns the smallest key strictly greater than every key that has
// key as a byte prefix, so the half-open range [key, PrefixEnd(key)) holds
// exactly the keys sharing that prefix.
//
// The rightmost byte below 0xff is incremented and everything after it is
// dropped. When there is no such byte (key is empty or made only of 0xff bytes)
// PrefixEnd returns []byte{0x00}, which etcd reads as "no upper bound".
// The given key is never modified.
func PrefixEnd(key []byte) []byte {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] < 0xff {
			end := make([]byte, i+1)
			copy(end, key)
			end[i]++
			return end
		}
	}

	end := make([]byte, len(noUpperBound))
	copy(end, noUpperBound)
	return end
}

func prefixEnd(key string) string {
	return string(PrefixEnd([]byte(key)))
}
