package layout

import (
	"math"
	"strings"
)

// Measurement 是测量函数的返回值：Width 为包含末尾空格在内的前进宽度；
// Box 仅在测量函数提供丰富度量时存在。
type Measurement struct {
	Width float64
	Box   *BoundingBox
}

// Measurer 由调用方注入，负责测量单个 run。实现必须是 run 文本与样式的纯函数；
// 若并发使用同一个 Fitter/Measurer，实现自身需保证并发安全。
type Measurer interface {
	Measure(run Run) Measurement
}

// WidthFunc adapts a bare width function to Measurer.
type WidthFunc func(run Run) float64

func (f WidthFunc) Measure(run Run) Measurement {
	return Measurement{Width: f(run)}
}

// TextMetrics mirrors the rich metrics of a text measuring API.
type TextMetrics struct {
	Width float64
	BoundingBox
}

// MetricsFunc adapts a rich metrics function to Measurer.
type MetricsFunc func(run Run) TextMetrics

func (f MetricsFunc) Measure(run Run) Measurement {
	m := f(run)
	box := m.BoundingBox
	return Measurement{Width: m.Width, Box: &box}
}

// MeasureRun 测量一个 run。以原文测得 AdvanceX（与包围盒）；
// 若文本以空格结尾，再测一次去掉末尾空白的文本得到 Width。
func MeasureRun(m Measurer, run Run) MeasuredRun {
	advance := m.Measure(run)
	width := advance.Width
	if strings.HasSuffix(run.Text, " ") {
		trimmed := Run{Text: strings.TrimRight(run.Text, " \t"), Style: run.Style}
		width = m.Measure(trimmed).Width
	}
	mr := MeasuredRun{
		Run:      run,
		Width:    width,
		Height:   run.FontSize * run.LineHeight,
		AdvanceX: advance.Width,
	}
	if advance.Box != nil {
		box := *advance.Box
		mr.Box = &box
	}
	return mr
}

// NewWord aggregates measured runs into a word.
func NewWord(runs []MeasuredRun) Word {
	w := Word{Runs: runs}
	for _, r := range runs {
		w.Width += r.Width
		w.AdvanceX += r.AdvanceX
		w.Height = math.Max(w.Height, r.Height)
	}
	if len(runs) > 0 {
		if first := runs[0]; first.Box != nil {
			w.OpticalLeft = floatPtr(first.Box.Left)
		}
		if last := runs[len(runs)-1]; last.Box != nil {
			w.OpticalRight = floatPtr(last.Box.Right)
		}
	}
	return w
}

// Words 把一个硬行内的 runs 拆成空格分隔的片段、分组并测量为 word。
func Words(m Measurer, runs []Run) []Word {
	groups := GroupWords(SplitRunsOnSpaces(runs))
	words := make([]Word, 0, len(groups))
	for _, group := range groups {
		measured := make([]MeasuredRun, len(group))
		for i, run := range group {
			measured[i] = MeasureRun(m, run)
		}
		words = append(words, NewWord(measured))
	}
	return words
}

// LongestWordInLine returns the widest word of a line; the first one wins
// ties. A line without words yields an empty word.
func LongestWordInLine(line Line) Word {
	var longest Word
	for i, w := range line.Words {
		if i == 0 || w.Width > longest.Width {
			longest = w
		}
	}
	return longest
}

// LongestWord returns the widest unbreakable word of a block.
func LongestWord(block Block) Word {
	var longest Word
	for _, line := range block.Lines {
		if w := LongestWordInLine(line); w.Width > longest.Width {
			longest = w
		}
	}
	return longest
}
