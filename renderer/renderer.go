// Package renderer 定义输出后端的公共接口，以及各后端共用的文本框绘制遍历。
package renderer

import (
	"math"

	"github.com/ByLCY/textfit/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或 PNG。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// VerticalMetrics reports the font level ascent and descent of a run, in points.
type VerticalMetrics func(run layout.Run) (ascent, descent float64)

// DrawGlyphsFunc draws a run with its baseline origin at (x, y), in points.
type DrawGlyphsFunc func(run layout.MeasuredRun, x, y float64)

// WalkFrame 计算文本框中每个 run 的基线位置并调用 draw。
//
// 字体内容区在行框内垂直居中；crop 时整体上移，使首行墨迹顶部与文本框顶部对齐。
func WalkFrame(frame layout.Frame, vm VerticalMetrics, draw DrawGlyphsFunc) {
	block := frame.Block
	if len(block.Lines) == 0 {
		return
	}
	first := block.Lines[0]
	shift := 0.0
	if frame.Crop {
		if ink, ok := layout.OpticalAscent(first); ok {
			shift = first.Height - bottomGap(first, vm) - ink
		}
	}
	bottom := frame.Y + first.Height - shift
	walk := func(run layout.MeasuredRun, x, y float64, _ layout.Word, line layout.Line, _ layout.WrappedBlock) {
		draw(run, x, y-bottomGap(line, vm))
	}
	layout.DrawBlock(block, frame.X, bottom, layout.Aligned(walk, frame.Align))
}

// bottomGap 为行框底部到基线的距离。
func bottomGap(line layout.Line, vm VerticalMetrics) float64 {
	var ascent, descent float64
	for _, w := range line.Words {
		for _, r := range w.Runs {
			a, d := vm(r.Run)
			ascent = math.Max(ascent, a)
			descent = math.Max(descent, d)
		}
	}
	return (line.Height-ascent-descent)/2 + descent
}
