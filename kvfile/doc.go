/*
Package kvfile loads key-value text files into ordered B-tree maps.

The input format is line oriented: one pair per line, key and value
separated by '=', with '#' starting a comment line. Loading large files
reports progress asynchronously over a broadcast channel, while the Load
API itself stays synchronous. A second entry point extracts pairs from
the rows of an HTML table.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the btree authors

All rights reserved.

Please refer to the LICENSE file for details.
*/
package kvfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kvfile'
func tracer() tracing.Trace {
	return tracing.Select("kvfile")
}
