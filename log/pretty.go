package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// layout arranges the key/value pairs of one record.
type layout int

const (
	textLayout layout = iota // key=value key=value
	jsonLayout               // one "key: value" per line, in braces
)

// palette holds the styles of one output. The renderer detects the color
// profile of the writer, so output that is not a terminal is left unstyled.
type palette struct {
	key, str, num, yes, no, dur, when, null lipgloss.Style

	trace, debug, info, warn, err lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		when:  fg("4"),
		null:  fg("8"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler is a [slog.Handler] for people rather than machines.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	layout layout
	attrs  []slog.Attr // flattened, keys qualified by group
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, l layout) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		style:  newPalette(w),
		layout: l,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		c.attrs = h.flatten(c.attrs, h.groups, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	if !r.Time.IsZero() {
		fields = h.flatten(fields, nil, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.flatten(fields, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.flatten(fields, h.groups, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.layout == jsonLayout {
		buf.WriteString("{\n")
	}

	for i, a := range fields {
		h.writeAttr(buf, i, a, r.Level)
	}

	if h.layout == jsonLayout {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// flatten appends a to out, expanding groups into dotted keys and applying
// ReplaceAttr to every leaf.
func (h *prettyHandler) flatten(out []slog.Attr, groups []string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(slices.Clip(groups), a.Key)
		}

		for _, ga := range a.Value.Group() {
			out = h.flatten(out, inner, ga)
		}

		return out
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Key == "" {
		return out
	}

	if len(groups) > 0 {
		a.Key = strings.Join(groups, ".") + "." + a.Key
	}

	return append(out, a)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, i int, a slog.Attr, level slog.Level) {
	switch h.layout {
	case jsonLayout:
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")

	default:
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
	}

	if a.Key == slog.LevelKey {
		buf.WriteString(h.style.level(level).Render(a.Value.String()))

		return
	}

	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	s := h.style

	switch v.Kind() {
	case slog.KindString:
		return s.str.Render(v.String())
	case slog.KindInt64:
		return s.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return s.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return s.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")
	case slog.KindDuration:
		return s.dur.Render(v.Duration().String())
	case slog.KindTime:
		return s.when.Render(v.Time().Format(DefaultTimeLayout))
	}

	if v.Any() == nil {
		return s.null.Render("null")
	}

	return s.str.Render(fmt.Sprint(v.Any()))
}
