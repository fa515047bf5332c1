package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/textfit/layout"
)

type placed struct {
	text string
	x, y float64
}

// 每个字符宽 4pt，墨迹上升 7pt。
func frameOf(crop bool, align layout.Align) layout.Frame {
	m := layout.MetricsFunc(func(run layout.Run) layout.TextMetrics {
		return layout.TextMetrics{
			Width:       4 * float64(len(run.Text)),
			BoundingBox: layout.BoundingBox{Ascent: 7},
		}
	})
	style := layout.Style{FontSize: 10, LineHeight: 1.2}
	block := layout.HardWrap(m, []layout.Run{layout.NewRun("aaaaaaaaaa\nbb", style)})
	return layout.Frame{
		X: 10, Y: 20,
		Bounds: layout.Size{Width: 100, Height: 100},
		Align:  align,
		Crop:   crop,
		Block:  layout.SoftWrap(100, block),
	}
}

func vm(run layout.Run) (float64, float64) { return 0.8 * run.FontSize, 0.2 * run.FontSize }

func walk(frame layout.Frame) []placed {
	var out []placed
	WalkFrame(frame, vm, func(run layout.MeasuredRun, x, y float64) {
		out = append(out, placed{run.Text, x, y})
	})
	return out
}

func TestWalkFrameBaselines(t *testing.T) {
	got := walk(frameOf(false, layout.AlignLeft))
	assert.Equal(t, []placed{{"aaaaaaaaaa", 10, 29}, {"bb", 10, 41}}, got)
}

func TestWalkFrameCrop(t *testing.T) {
	got := walk(frameOf(true, layout.AlignLeft))
	assert.InDelta(t, 27.0, got[0].y, 1e-9)
	assert.InDelta(t, 39.0, got[1].y, 1e-9)
}

func TestWalkFrameCenter(t *testing.T) {
	got := walk(frameOf(false, layout.AlignCenter))
	assert.InDelta(t, 10+30.0, got[0].x, 1e-9)
	assert.InDelta(t, 10+46.0, got[1].x, 1e-9)
}

func TestWalkFrameEmpty(t *testing.T) {
	assert.Empty(t, walk(layout.Frame{}))
}
