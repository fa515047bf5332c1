package layout

import (
	"unicode/utf8"
)

// monospace 测量每个字符宽 0.5em，不提供包围盒。
var monospace = WidthFunc(func(run Run) float64 {
	return float64(utf8.RuneCountInString(run.Text)) * 0.5 * run.FontSize
})

// inked 在 monospace 的基础上报告墨迹上升 0.7em、下降 0.2em。
var inked = MetricsFunc(func(run Run) TextMetrics {
	w := monospace(run)
	return TextMetrics{
		Width: w,
		BoundingBox: BoundingBox{
			Ascent:  0.7 * run.FontSize,
			Descent: 0.2 * run.FontSize,
			Right:   w,
		},
	}
})

func styled(size, lineHeight float64) Style {
	return Style{FontFamily: "mono", FontSize: size, LineHeight: lineHeight}
}

func texts(runs []Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.Text
	}
	return out
}

func wordText(w Word) string {
	var s string
	for _, r := range w.Runs {
		s += r.Text
	}
	return s
}

func lineTexts(b Block) [][]string {
	var out [][]string
	for _, line := range b.Lines {
		words := []string{}
		for _, w := range line.Words {
			words = append(words, wordText(w))
		}
		out = append(out, words)
	}
	return out
}
