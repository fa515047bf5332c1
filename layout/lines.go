package layout

import "math"

// NewLine aggregates words into a line. Width sums AdvanceX, so the last
// word's trailing space (if any) is part of it.
func NewLine(words []Word) Line {
	line := Line{Words: words}
	for _, w := range words {
		line.Width += w.AdvanceX
		line.Height = math.Max(line.Height, w.Height)
	}
	if len(words) > 0 {
		if v := words[0].OpticalLeft; v != nil {
			line.OpticalLeft = floatPtr(*v)
		}
		if v := words[len(words)-1].OpticalRight; v != nil {
			line.OpticalRight = floatPtr(*v)
		}
	}
	return line
}

// Lines 根据显式换行生成硬行，每个换行段落对应一行；没有 word 的行宽高均为 0。
func Lines(m Measurer, runs []Run) []Line {
	segments := SplitLines(runs)
	lines := make([]Line, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, NewLine(Words(m, seg)))
	}
	return lines
}

// LineAscent returns the largest ascent reported by ascent over the runs
// of a line, or 0 for an empty line.
func LineAscent(line Line, ascent func(run Run) float64) float64 {
	var max float64
	for _, w := range line.Words {
		for _, r := range w.Runs {
			max = math.Max(max, ascent(r.Run))
		}
	}
	return max
}

// OpticalAscent returns the largest measured ink ascent of a line. The
// bool is false when no run of the line carries a bounding box.
func OpticalAscent(line Line) (float64, bool) {
	var (
		max   float64
		found bool
	)
	for _, w := range line.Words {
		for _, r := range w.Runs {
			if r.Box == nil {
				continue
			}
			if !found || r.Box.Ascent > max {
				max = r.Box.Ascent
			}
			found = true
		}
	}
	return max, found
}
