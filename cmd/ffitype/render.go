package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ffi-types/descriptor"
	"github.com/wippyai/ffi-types/typespec"
)

type theme struct {
	title  lipgloss.Style
	str    lipgloss.Style
	scalar lipgloss.Style
	meta   lipgloss.Style
	owned  lipgloss.Style
	static lipgloss.Style
	branch lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

// newTheme returns coloured styles, or unstyled ones when output is not a terminal.
func newTheme(color bool) theme {
	if !color {
		plain := lipgloss.NewStyle()
		return theme{plain, plain, plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		str:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98")),
		scalar: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		meta:   lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		owned:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		static: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		branch: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// renderTree draws t and every descriptor under it, one per line.
func (th theme) renderTree(t *descriptor.Type, owned bool) string {
	var b strings.Builder
	b.WriteString(th.renderNode(t, -1, owned))
	b.WriteByte('\n')
	th.renderChildren(&b, t, "")
	return b.String()
}

func (th theme) renderChildren(b *strings.Builder, t *descriptor.Type, prefix string) {
	fields := t.Fields()
	if len(fields) == 0 {
		return
	}
	offsets := descriptor.LayoutOf(t).Offsets

	for i, f := range fields {
		connector, indent := "├── ", "│   "
		if i == len(fields)-1 {
			connector, indent = "└── ", "    "
		}
		b.WriteString(th.branch.Render(prefix + connector))
		b.WriteString(th.renderNode(f, int(offsets[i]), f.IsStruct()))
		b.WriteByte('\n')
		th.renderChildren(b, f, prefix+indent)
	}
}

// renderNode formats one descriptor. A negative offset is omitted.
func (th theme) renderNode(t *descriptor.Type, offset int, owned bool) string {
	l := descriptor.LayoutOf(t)

	var name string
	if t.IsStruct() {
		name = th.str.Render(fmt.Sprintf("struct[%d]", len(t.Fields())))
	} else {
		name = th.scalar.Render(typespec.Name(t))
	}

	parts := []string{name}
	if offset >= 0 {
		parts = append(parts, th.meta.Render(fmt.Sprintf("+%d", offset)))
	}
	parts = append(parts,
		th.meta.Render(fmt.Sprintf("tag=%s size=%d align=%d", t.Tag, l.Size, l.Align)),
		th.meta.Render(fmt.Sprintf("@%#x", t.Addr())),
	)
	switch {
	case owned:
		parts = append(parts, th.owned.Render("owned"))
	case descriptor.IsStatic(t):
		parts = append(parts, th.static.Render("static"))
	default:
		parts = append(parts, th.static.Render("borrowed"))
	}
	return strings.Join(parts, " ")
}
