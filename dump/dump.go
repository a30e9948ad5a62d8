package dump

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

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/irazza/btree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Walker is the slice of a B-tree map this package needs: a pre-order
// walk over node descriptions. *btree.Map satisfies it for any key and
// value type.
type Walker interface {
	WalkStructure(visit func(btree.NodeInfo) bool)
}

// Style denotes the role of a line in a tree dump. Clients may assign
// output colors per style.
type Style int8

// Styles for dump lines.
const (
	RootStyle Style = iota
	InnerStyle
	LeafStyle
)

// Config represents a set of configuration parameters for rendering
// tree dumps.
type Config struct {
	LineWidth int            // line width in terminal cells ("en"s)
	Context   *uax11.Context // language context for character width calculations
}

// ConfigFromTerminal is a simple helper for creating a rendering
// configuration suitable for a terminal. It checks whether stdout is
// a terminal, and if so it reads the terminal's width and sets
// Config.LineWidth accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil {
			config.LineWidth = 65
		} else {
			if w > 65 {
				config.LineWidth = w - 10
			} else if w > 30 {
				config.LineWidth = w - 5
			} else if w > 10 {
				config.LineWidth = w
			} else {
				config.LineWidth = 10
			}
		}
	} else {
		config.LineWidth = 65
	}
	T().P("dump", "terminal").Infof("setting line width to %d en", config.LineWidth)
	return config
}

// TreePrinter renders the node structure of a map as an indented
// outline, one line per node in pre-order, with colors marking the
// role of each node.
type TreePrinter struct {
	colors map[Style]*color.Color
}

// NewTreePrinter creates a tree printer. colors associates line styles
// with output colors and may cover any subset of styles; passing nil
// selects a default palette.
func NewTreePrinter(colors map[Style]*color.Color) *TreePrinter {
	p := &TreePrinter{}
	if colors == nil {
		p.colors = makeDefaultPalette()
	} else {
		p.colors = colors
	}
	return p
}

func makeDefaultPalette() map[Style]*color.Color {
	return map[Style]*color.Color{
		RootStyle:  color.New(color.FgRed),
		InnerStyle: color.New(color.FgBlue),
		LeafStyle:  color.New(color.FgGreen),
	}
}

// Print renders the node structure of m to stdout.
//
// If config is nil, a heuristic will create one, taking terminal
// properties into account (if stdout is interactive) and reading the
// width context from the user's environment.
func (p *TreePrinter) Print(m Walker, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return p.Tree(m, os.Stdout, config)
}

// Tree renders the node structure of m to w, one line per node in
// pre-order. Lines longer than config.LineWidth are clipped at
// grapheme boundaries and terminated with an ellipsis.
func (p *TreePrinter) Tree(m Walker, w io.Writer, config *Config) error {
	if m == nil {
		return nil
	}
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	var err error
	m.WalkStructure(func(info btree.NodeInfo) bool {
		line := renderLine(info, config)
		style := InnerStyle
		switch {
		case info.Depth == 0:
			style = RootStyle
		case info.Leaf:
			style = LeafStyle
		}
		if c, ok := p.colors[style]; ok {
			_, err = c.Fprintln(w, line)
		} else {
			_, err = fmt.Fprintln(w, line)
		}
		return err == nil
	})
	return err
}

// renderLine lays out a single node as "  ▸ [entry, entry, …]",
// indented by tree depth and clipped to the configured line width.
func renderLine(info btree.NodeInfo, config *Config) string {
	var sb strings.Builder
	for i := 0; i < info.Depth; i++ {
		sb.WriteString("  ")
	}
	if info.Leaf {
		sb.WriteString("▸ [")
	} else {
		sb.WriteString("▹ [")
	}
	// Reserve two cells for a trailing ellipsis and the closing bracket.
	budget := config.LineWidth - cellCount(sb.String(), config.Context) - 2
	for i, entry := range info.Entries {
		sep := ""
		if i > 0 {
			sep = ", "
		}
		cells := cellCount(sep+entry, config.Context)
		if cells > budget {
			sb.WriteString("…")
			break
		}
		sb.WriteString(sep)
		sb.WriteString(entry)
		budget -= cells
	}
	sb.WriteString("]")
	return sb.String()
}

// cellCount measures s in fixed-width terminal cells, respecting
// grapheme cluster boundaries and East Asian width classes.
func cellCount(s string, context *uax11.Context) int {
	gstr := grapheme.StringFromString(s)
	return uax11.StringWidth(gstr, context)
}
