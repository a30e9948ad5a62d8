/*
Package btree implements an ordered associative container on top of a
classic B-tree.

Ordered maps

Hash maps answer point queries in constant time but scramble key order.
Many workloads need both: associative access and the sorted sequence of
keys, for range scans, neighbor queries, or cheap min/max extraction.
Balanced search trees provide exactly that, and multi-way trees do it
with shallow heights and cache-friendly node fans.

This package stores keys and values at every node level, the shape
introduced by Bayer and McCreight in 1972 and described in Knuth's
volume 3 as a B-tree of order m. It is not a B+tree: there is no
separate leaf chain, and an internal node's keys are real entries, not
routing copies.

From Knuth, The Art of Computer Programming, Vol. 3 (Sorting and
Searching), on B-trees of order m:

Every node has at most m children. Every node, except for the root and
the leaves, has at least m/2 children. The root has at least 2 children
(unless it is a leaf). All leaves appear on the same level. A nonleaf
node with k children contains k - 1 keys.

_________________________________________________________________________

A Map is generic over keys and values. Keys need a total order, supplied
either by the natural ordering of the key type

	m := btree.NewOrdered[string, int]()
	m.Put("b", 2)
	m.Put("a", 1)
	k, _ := m.Min() // "a"

or by an explicit comparison function fixed at construction:

	m, err := btree.New[[]byte, int](btree.Config[[]byte]{
	    Order:   64,
	    Compare: func(a, b []byte) (int, error) { return bytes.Compare(a, b), nil },
	})

Comparison functions may fail, which makes dynamically typed keys
possible (see AnyOrder); a failed comparison surfaces as
ErrIncomparableKeys before any mutation has been committed.

The container is single-writer: no internal locking, no concurrent
mutation. Callers needing shared access serialize externally. Iteration
cursors are cheap, independent, and one-shot; mutating the map while a
cursor is open leaves the cursor undefined.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2026, the btree authors

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package btree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
