package ui

import (
	"fmt"
	"strings"

	"github.com/bnema/gowlc/wlc"
	"github.com/charmbracelet/lipgloss"
)

// RenderSnapshot draws the outputs and views of a snapshot, one box per
// output with its views listed inside.
func RenderSnapshot(snap wlc.Snapshot) string {
	var b strings.Builder

	b.WriteString(FormatIndicator(snap.Running, runningLabel(snap.Running)))
	b.WriteString("\n")
	if snap.HandlerFailures > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d handler failure(s)", snap.HandlerFailures)))
		if snap.LastError != "" {
			b.WriteString(SubtleStyle.Render(": " + snap.LastError))
		}
		b.WriteString("\n")
	}

	if len(snap.Outputs) == 0 {
		b.WriteString(MutedStyle.Italic(true).Render("No outputs"))
		return b.String()
	}

	views := make(map[wlc.Handle]wlc.ViewInfo, len(snap.Views))
	for _, v := range snap.Views {
		views[v.Handle] = v
	}

	boxes := make([]string, 0, len(snap.Outputs))
	for _, o := range snap.Outputs {
		boxes = append(boxes, renderOutput(o, views))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, boxes...))
	return b.String()
}

func runningLabel(running bool) string {
	if running {
		return "Running"
	}
	return "Stopped"
}

func renderOutput(o wlc.OutputInfo, views map[wlc.Handle]wlc.ViewInfo) string {
	var b strings.Builder

	name := BoldStyle.Render(o.Name)
	if o.Focused {
		name += " " + InfoStyle.Render("(focused)")
	}
	if o.Sleeping {
		name += " " + MutedStyle.Render("(asleep)")
	}
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%s @%dx  handle %s", o.Resolution, o.Scale, o.Handle)))

	if len(o.Views) == 0 {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("  no views"))
	}
	for _, h := range o.Views {
		b.WriteString("\n")
		v, ok := views[h]
		if !ok {
			b.WriteString(MutedStyle.Render("  " + h.String()))
			continue
		}
		b.WriteString(FormatView(v))
	}
	return BoxStyle.Render(b.String())
}

// FormatView renders one view line
func FormatView(v wlc.ViewInfo) string {
	title := v.Title
	if title == "" {
		title = "(untitled)"
	}
	line := "  " + TextStyle.Render(title)
	if v.AppID != "" {
		line += " " + SubtleStyle.Render("["+v.AppID+"]")
	}
	line += " " + SubtleStyle.Render(v.Geometry.String())
	if v.State&wlc.StateActivated != 0 {
		line += " " + SuccessStyle.Render(IconActive)
	}
	return line
}

// FormatStep renders one replayed step and what the native side got back
func FormatStep(step int, event string, returned *bool) string {
	prefix := SubtleStyle.Render(fmt.Sprintf("%3d", step)) + " " + TextStyle.Render(event)
	if returned == nil {
		return prefix
	}
	if *returned {
		return prefix + " " + SuccessStyle.Render(IconSuccess+" true")
	}
	return prefix + " " + MutedStyle.Render(IconError+" false")
}

// RenderEventKinds lists every event kind with its handler arguments
func RenderEventKinds(kinds []wlc.KindInfo) string {
	width := 0
	for _, k := range kinds {
		if n := len(k.Kind); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, k := range kinds {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(KeyStyle.Width(width + 2).Render(string(k.Kind)))
		b.WriteString(TextStyle.Render("(" + strings.Join(k.Args, ", ") + ")"))
		if k.Returns {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf(" -> bool, default %t", k.Neutral)))
		}
		if k.Default != "" {
			b.WriteString(MutedStyle.Render("  " + k.Default))
		}
	}
	return b.String()
}
