package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	text string
	x, y float64
}

func record(calls *[]drawCall) DrawRunFunc {
	return func(run MeasuredRun, x, y float64, _ Word, _ Line, _ WrappedBlock) {
		*calls = append(*calls, drawCall{run.Text, x, y})
	}
}

func TestDrawBlockOrderAndBaselines(t *testing.T) {
	block := SoftWrap(100, HardWrap(monospace, []Run{NewRun("ab cd\nef", styled(10, 1.2))}))

	var calls []drawCall
	DrawBlock(block, 5, 20, record(&calls))
	assert.Equal(t, []drawCall{
		{"ab ", 5, 20},
		{"cd", 20, 20},
		{"ef", 5, 32},
	}, calls)
}

func TestDrawBlockMixedLineHeights(t *testing.T) {
	runs := []Run{NewRun("a\n", styled(10, 1)), NewRun("b", styled(20, 1))}
	block := SoftWrap(100, HardWrap(monospace, runs))

	var calls []drawCall
	DrawBlock(block, 0, 10, record(&calls))
	require.Len(t, calls, 2)
	assert.Equal(t, 10.0, calls[0].y)
	assert.Equal(t, 30.0, calls[1].y)
}

func TestDrawBlockEmpty(t *testing.T) {
	var calls []drawCall
	DrawBlock(WrappedBlock{}, 0, 0, record(&calls))
	assert.Empty(t, calls)
}

func TestAligned(t *testing.T) {
	block := SoftWrap(100, HardWrap(monospace, []Run{NewRun("abcd\nab", styled(10, 1))}))

	var calls []drawCall
	DrawBlock(block, 0, 10, Aligned(record(&calls), AlignCenter))
	assert.Equal(t, []drawCall{{"abcd", 40, 10}, {"ab", 45, 20}}, calls)

	calls = nil
	DrawBlock(block, 0, 10, Aligned(record(&calls), AlignRight))
	assert.Equal(t, []drawCall{{"abcd", 80, 10}, {"ab", 90, 20}}, calls)
}

func TestParseAlign(t *testing.T) {
	cases := map[string]Align{
		"":       AlignLeft,
		"left":   AlignLeft,
		"Center": AlignCenter,
		" end ":  AlignRight,
		"right":  AlignRight,
	}
	for in, want := range cases {
		got, err := ParseAlign(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAlign("justify")
	assert.Error(t, err)

	text, err := AlignCenter.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "center", string(text))
}
