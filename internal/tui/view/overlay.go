package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLines pads or cuts content to exactly width x height cells.
func PadLines(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Truncate(line, width, "")
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay centers box over base, which is first padded to width x height.
func Overlay(base, box string, width, height int) string {
	if box == "" || width <= 0 || height <= 0 {
		return base
	}

	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	boxW = min(boxW, width)
	if len(boxLines) > height {
		boxLines = boxLines[:height]
	}

	top := max(0, (height-len(boxLines))/2)
	left := max(0, (width-boxW)/2)

	lines := strings.Split(PadLines(base, width, height), "\n")
	for i, line := range boxLines {
		if w := lipgloss.Width(line); w > boxW {
			line = ansi.Truncate(line, boxW, "")
		} else if w < boxW {
			line += strings.Repeat(" ", boxW-w)
		}
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.ResetStyle + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}
