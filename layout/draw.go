package layout

import (
	"fmt"
	"strings"
)

// DrawRunFunc draws one run with its origin at (x, y), y being the
// baseline of the run's line.
type DrawRunFunc func(run MeasuredRun, x, y float64, word Word, line Line, block WrappedBlock)

// DrawBlock 按从左到右、从上到下的顺序为每个 run 调用 draw。
// 第一行的基线位于 y，之后每行下移该行的高度；x 按 run.AdvanceX 前进。
func DrawBlock(block WrappedBlock, x, y float64, draw DrawRunFunc) {
	if len(block.Lines) == 0 {
		return
	}
	cy := y - block.Lines[0].Height
	for _, line := range block.Lines {
		cy += line.Height
		cx := x
		for _, word := range line.Words {
			for _, run := range word.Runs {
				draw(run, cx, cy, word, line, block)
				cx += run.AdvanceX
			}
		}
	}
}

// Align 表示行内水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// ParseAlign 解析 left/center/right（大小写不敏感，"end" 等同 right，空串为 left）。
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "start":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("未知的对齐方式 %q", s)
}

// Offset returns the x offset of line within a block wrapped at maxWidth.
func (a Align) Offset(maxWidth float64, line Line) float64 {
	switch a {
	case AlignCenter:
		return (maxWidth - line.Width) / 2
	case AlignRight:
		return maxWidth - line.Width
	default:
		return 0
	}
}

// Aligned wraps draw so every line is offset according to align.
func Aligned(draw DrawRunFunc, align Align) DrawRunFunc {
	return func(run MeasuredRun, x, y float64, word Word, line Line, block WrappedBlock) {
		draw(run, x+align.Offset(block.MaxWidth, line), y, word, line, block)
	}
}
