/*
Package dump renders the internal node structure of B-tree maps on
fixed-width output devices, one line per node. It is a debugging aid:
whenever a tree misbehaves, an indented outline of its nodes tells more
than any amount of single-stepping.

The package helps performing the following tasks:

▪︎ Derive a rendering configuration from the current terminal

▪︎ Render the node outline of a map with colors marking node roles

▪︎ Clip long node lines by their visual width, not their byte length

Line widths are measured in fixed-width character cells per UAX#11,
with grapheme clusters from UAX#29 as the unit of clipping, so keys
containing wide or combining characters do not wreck the layout.

Typical usage renders to stdout with everything derived from the
environment:

	m := btree.NewOrdered[string, int]()
	...
	p := dump.NewTreePrinter(nil)
	p.Print(m, nil)

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
package dump

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
