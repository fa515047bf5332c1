package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolidFitEqualizesLineWidths(t *testing.T) {
	block := HardWrap(monospace, []Run{NewRun("ab\nabcd", styled(10, 1))})
	solid := SolidFit(100, block)

	require.Len(t, solid.Lines, 2)
	for _, line := range solid.Lines {
		assert.InDelta(t, 100, line.Width, 1e-9)
	}
	assert.InDelta(t, 100, solid.Lines[0].Height, 1e-9)
	assert.InDelta(t, 50, solid.Lines[1].Height, 1e-9)
	assert.InDelta(t, 150, solid.Height, 1e-9)
	assert.Equal(t, 100.0, solid.MaxWidth)
}

func TestSolidFitKeepsEmptyLines(t *testing.T) {
	block := HardWrap(monospace, []Run{NewRun("ab\n\ncd", styled(10, 1))})
	solid := SolidFit(40, block)

	require.Len(t, solid.Lines, 3)
	assert.Equal(t, 0.0, solid.Lines[1].Width)
	assert.Equal(t, 0.0, solid.Lines[1].Height)
	assert.InDelta(t, 80, solid.Height, 1e-9)

	empty := SolidFit(40, HardWrap(monospace, []Run{NewRun("\n", styled(10, 1))}))
	assert.Equal(t, 0.0, empty.Width)
	assert.Equal(t, 0.0, empty.Height)
}

func TestContain(t *testing.T) {
	wrapped := SoftWrap(30, HardWrap(monospace, []Run{NewRun("aaaa bbbb", styled(10, 1))}))
	require.Len(t, wrapped.Lines, 2)

	contained := Contain(Size{Width: 100, Height: 100}, wrapped.Block)
	// 宽 25、高 20：宽度方向限制为 4 倍，高度方向为 5 倍
	assert.InDelta(t, 100, contained.Width, 1e-9)
	assert.InDelta(t, 80, contained.Height, 1e-9)
	assert.Len(t, contained.Lines, 2)
	assert.Equal(t, 100.0, contained.MaxWidth)

	contained = Contain(Size{Width: 100, Height: 10}, wrapped.Block)
	assert.InDelta(t, 10, contained.Height, 1e-9)
	assert.InDelta(t, 12.5, contained.Width, 1e-9)
}

func TestContainEmptyBlock(t *testing.T) {
	contained := Contain(Size{Width: 100, Height: 50}, Block{})
	assert.Equal(t, 0.0, contained.Width)
	assert.Equal(t, 0.0, contained.Height)
	assert.Equal(t, 100.0, contained.MaxWidth)
}
