package layout

import "strings"

// SplitRunOnSpaces splits a run on spaces (tabs count as spaces). Every
// fragment keeps its trailing space except the last one. A run without a
// space is returned as is.
func SplitRunOnSpaces(run Run) []Run {
	parts := strings.Split(strings.ReplaceAll(run.Text, "\t", " "), " ")
	if len(parts) == 1 {
		return []Run{run}
	}
	out := make([]Run, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += " "
		}
		out[i] = Run{Text: part, Style: run.Style}
	}
	return out
}

// SplitRunsOnSpaces applies SplitRunOnSpaces to every run in order.
func SplitRunsOnSpaces(runs []Run) []Run {
	var out []Run
	for _, run := range runs {
		out = append(out, SplitRunOnSpaces(run)...)
	}
	return out
}

// SplitRunOnNewlines splits a run on '\n', treating "\r\n" as '\n'.
// N newlines yield N+1 runs, empty ones included.
func SplitRunOnNewlines(run Run) []Run {
	parts := strings.Split(strings.ReplaceAll(run.Text, "\r\n", "\n"), "\n")
	if len(parts) == 1 {
		return []Run{run}
	}
	out := make([]Run, len(parts))
	for i, part := range parts {
		out[i] = Run{Text: part, Style: run.Style}
	}
	return out
}

// SplitLines 按显式换行把 runs 分成硬行；同一硬行可以包含来自不同原始 run 的片段。
func SplitLines(runs []Run) [][]Run {
	var lines [][]Run
	var current []Run
	for _, run := range runs {
		parts := SplitRunOnNewlines(run)
		current = append(current, parts[0])
		for _, part := range parts[1:] {
			lines = append(lines, current)
			current = []Run{part}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// GroupWords regroups space-split fragments into words. A fragment closes
// its word when it ends with a space or is the last fragment. Empty
// fragments belong to no word.
func GroupWords(fragments []Run) [][]Run {
	var groups [][]Run
	var current []Run
	for i, frag := range fragments {
		if frag.Text != "" {
			current = append(current, frag)
		}
		if strings.HasSuffix(frag.Text, " ") || i == len(fragments)-1 {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil
		}
	}
	return groups
}
