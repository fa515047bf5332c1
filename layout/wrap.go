package layout

import "math"

// SoftWrapper 在给定宽度内对硬换行的文本块做软换行。
type SoftWrapper func(maxWidth float64, block Block) WrappedBlock

var _ SoftWrapper = SoftWrap

// NewBlock aggregates lines: width is the widest line, height the sum.
func NewBlock(lines []Line) Block {
	b := Block{Lines: lines}
	for _, line := range lines {
		b.Width = math.Max(b.Width, line.Width)
		b.Height += line.Height
	}
	return b
}

// HardWrap 只按显式换行把 runs 排成文本块。
func HardWrap(m Measurer, runs []Run) Block {
	return NewBlock(Lines(m, runs))
}

// SoftWrap 贪心换行：已经放得下的硬行原样保留；否则逐个放入 word，
// 判断时使用不含末尾空格的 word.Width，累加时使用 AdvanceX。
// 单个超宽的 word 独占一行，从不在 word 内部断开。
func SoftWrap(maxWidth float64, block Block) WrappedBlock {
	wrapped := WrappedBlock{MaxWidth: maxWidth}
	for _, line := range block.Lines {
		if line.Width <= maxWidth {
			wrapped.Lines = append(wrapped.Lines, line)
			continue
		}
		wrapped.Lines = append(wrapped.Lines, wrapLine(maxWidth, line)...)
	}
	for _, line := range wrapped.Lines {
		wrapped.Width = math.Max(wrapped.Width, line.Width)
		wrapped.Height += line.Height
	}
	return wrapped
}

func wrapLine(maxWidth float64, line Line) []Line {
	var (
		lines   []Line
		current []Word
		width   float64
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, NewLine(current))
		}
	}
	for _, w := range line.Words {
		if width+w.Width <= maxWidth {
			current = append(current, w)
			width += w.AdvanceX
			continue
		}
		flush()
		current = []Word{w}
		width = w.AdvanceX
	}
	flush()
	return lines
}

// Layout hard wraps runs and soft wraps the result at maxWidth.
func Layout(m Measurer, runs []Run, maxWidth float64) WrappedBlock {
	return SoftWrap(maxWidth, HardWrap(m, runs))
}
