package layout

import "strings"

// wrap splits text into lines no wider than width. Words longer than a line are broken
// between runes. Explicit newlines always start a new line.
func wrap(text string, width float64, font Font, m TextMeasurer) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.Width(candidate, font) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for m.Width(word, font) > width {
				head, tail := splitToWidth(word, width, font, m)
				lines = append(lines, head)
				word = tail
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// splitToWidth returns the longest rune prefix of word that fits, always at least one rune
func splitToWidth(word string, width float64, font Font, m TextMeasurer) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.Width(string(runes[:n+1]), font) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
