package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBlockInDelta(t *testing.T, want, got Block, delta float64) {
	t.Helper()
	assert.InDelta(t, want.Width, got.Width, delta)
	assert.InDelta(t, want.Height, got.Height, delta)
	require.Len(t, got.Lines, len(want.Lines))
	for i := range want.Lines {
		wl, gl := want.Lines[i], got.Lines[i]
		assert.InDelta(t, wl.Width, gl.Width, delta)
		assert.InDelta(t, wl.Height, gl.Height, delta)
		require.Len(t, gl.Words, len(wl.Words))
		for j := range wl.Words {
			ww, gw := wl.Words[j], gl.Words[j]
			assert.InDelta(t, ww.Width, gw.Width, delta)
			assert.InDelta(t, ww.AdvanceX, gw.AdvanceX, delta)
			for k := range ww.Runs {
				wr, gr := ww.Runs[k], gw.Runs[k]
				assert.Equal(t, wr.Text, gr.Text)
				assert.InDelta(t, wr.FontSize, gr.FontSize, delta)
				assert.InDelta(t, wr.AdvanceX, gr.AdvanceX, delta)
				if wr.Box != nil {
					require.NotNil(t, gr.Box)
					assert.InDelta(t, wr.Box.Ascent, gr.Box.Ascent, delta)
				}
			}
		}
	}
}

func TestScaleRoundTrip(t *testing.T) {
	block := HardWrap(inked, []Run{NewRun("Sphinx of black\nquartz, judge my vow", styled(13, 1.2))})
	for _, s := range []float64{0.1, 0.5, 1, 3.7, 42} {
		assertBlockInDelta(t, block, block.Scale(s).Scale(1/s), 1e-9)
	}
}

func TestScaleIsUniform(t *testing.T) {
	block := HardWrap(inked, []Run{NewRun("ab cd", styled(10, 1.5))})
	scaled := block.Scale(2)
	assert.Equal(t, 2*block.Width, scaled.Width)
	assert.Equal(t, 2*block.Height, scaled.Height)
	run := scaled.Lines[0].Words[0].Runs[0]
	assert.Equal(t, 20.0, run.FontSize)
	assert.Equal(t, 1.5, run.LineHeight)
	assert.InDelta(t, 14, run.Box.Ascent, 1e-9)
	require.NotNil(t, scaled.Lines[0].OpticalRight)
	assert.InDelta(t, 2*(*block.Lines[0].OpticalRight), *scaled.Lines[0].OpticalRight, 1e-9)

	// 原值不受影响
	assert.Equal(t, 10.0, block.Lines[0].Words[0].Runs[0].FontSize)
	assert.InDelta(t, 7, block.Lines[0].Words[0].Runs[0].Box.Ascent, 1e-9)
}

func TestWrappedBlockScale(t *testing.T) {
	wrapped := SoftWrap(50, HardWrap(monospace, []Run{NewRun("ab cd", styled(10, 1))}))
	assert.Equal(t, 100.0, wrapped.Scale(2).MaxWidth)
}
