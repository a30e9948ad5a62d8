package kvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guiguan/caster"
	"github.com/hashicorp/go-uuid"
	"github.com/irazza/btree"
)

/*
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

// Some constants for progress cadence defaults
const (
	oneKb     = 1024
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 1024000
	oneMb     = 1048576
)

// ErrBadSyntax flags an input line which does not follow the key-value
// format. Load reports it only in strict mode, wrapped together with
// the line number.
var ErrBadSyntax = errors.New("kvfile: bad syntax")

// Progress is a snapshot of a running load, broadcast to progress
// subscribers. The final snapshot of a run has Done set.
type Progress struct {
	RunID   string // unique id of this load run
	Lines   int    // input lines consumed so far
	Pairs   int    // pairs stored so far
	Skipped int    // malformed lines ignored (lenient mode only)
	Done    bool   // true for the final snapshot
}

// Option configures a load run.
type Option func(*loader)

// Strict makes a load fail on the first malformed input line instead
// of skipping it.
func Strict() Option {
	return func(ld *loader) { ld.strict = true }
}

// WithOrder sets the order of the created map. Zero picks the
// default order.
func WithOrder(order int) Option {
	return func(ld *loader) { ld.order = order }
}

// WithProgress subscribes fn to progress snapshots. fn is called from
// a separate goroutine, but Load returns only after the final snapshot
// has been delivered.
func WithProgress(fn func(Progress)) Option {
	return func(ld *loader) { ld.progress = fn }
}

// loader bundles the state of one load run.
type loader struct {
	runID    string         // identifies this run in traces and snapshots
	strict   bool           // fail on malformed lines
	order    int            // order of the created map
	every    int            // lines between progress snapshots
	progress func(Progress) // client callback, may be nil
	cast     *caster.Caster // broadcaster for progress snapshots
}

// Load reads a key-value text file and returns its pairs as an ordered
// map. Blank lines and lines starting with '#' are skipped; on lines
// holding a pair, whitespace around key and value is trimmed. Later
// occurrences of a key overwrite earlier ones.
//
// Progress reporting for large files is done asynchronously, but this
// is transparent to the client: Load itself is synchronous and all
// progress snapshots have been delivered when it returns.
func Load(ctx context.Context, name string, opts ...Option) (*btree.Map[string, string], error) {
	file, size, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	ld, err := newLoader(size, opts...)
	if err != nil {
		return nil, err
	}
	return ld.run(ctx, file)
}

// LoadFrom reads key-value lines from r. It behaves like Load, with a
// progress cadence suitable for medium-sized input.
func LoadFrom(ctx context.Context, r io.Reader, opts ...Option) (*btree.Map[string, string], error) {
	ld, err := newLoader(sixKb, opts...)
	if err != nil {
		return nil, err
	}
	return ld.run(ctx, r)
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(name string) (*os.File, int64, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, 0, err
	} else if !fi.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("file is not a regular file")
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, 0, err
	}
	return file, fi.Size(), nil
}

func newLoader(size int64, opts ...Option) (*loader, error) {
	runID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, fmt.Errorf("cannot create run id: %w", err)
	}
	ld := &loader{
		runID: runID,
		order: btree.DefaultOrder,
		every: cadence(size),
		cast:  caster.New(nil), // we will broadcast snapshots as lines are consumed
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld, nil
}

// cadence derives the number of lines between two progress snapshots
// from the input size.
func cadence(size int64) int {
	if size < oneKb {
		return 16
	} else if size < tenKb {
		return 64
	} else if size < hundredKb {
		return 256
	} else if size < oneMb {
		return 1024
	}
	return 4096
}

// run consumes r line by line and fills a fresh map.
func (ld *loader) run(ctx context.Context, r io.Reader) (*btree.Map[string, string], error) {
	m, err := btree.New[string, string](btree.Config[string]{
		Order:   ld.order,
		Compare: btree.Ordered[string](),
	})
	if err != nil {
		return nil, err
	}
	done := ld.subscribe(ctx)
	defer func() {
		ld.cast.Close()
		<-done // all snapshots delivered
	}()
	tracer().P("run", ld.runID).Debugf("loading key-value pairs")
	snap := Progress{RunID: ld.runID}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*oneKb), oneMb)
	for scanner.Scan() {
		snap.Lines++
		if snap.Lines%ld.every == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ld.cast.Pub(snap)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			if ld.strict {
				return nil, fmt.Errorf("line %d: %w", snap.Lines, ErrBadSyntax)
			}
			snap.Skipped++
			continue
		}
		if err := m.Put(key, strings.TrimSpace(value)); err != nil {
			return nil, err
		}
		snap.Pairs = m.Len()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	snap.Done = true
	ld.cast.Pub(snap)
	tracer().P("run", ld.runID).Infof("loaded %d pairs from %d lines", snap.Pairs, snap.Lines)
	return m, nil
}

// subscribe attaches the client's progress callback to the broadcast
// channel. The returned channel closes after the last snapshot has been
// forwarded.
func (ld *loader) subscribe(ctx context.Context) chan struct{} {
	done := make(chan struct{})
	if ld.progress == nil {
		close(done)
		return done
	}
	ch, ok := ld.cast.Sub(ctx, 64)
	if !ok {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		for msg := range ch {
			if snap, ok := msg.(Progress); ok {
				ld.progress(snap)
			}
		}
	}()
	return done
}
