package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftWrapKeepsFittingLines(t *testing.T) {
	block := HardWrap(monospace, []Run{NewRun("aa bb\ncc", styled(10, 1))})
	wrapped := SoftWrap(100, block)
	assert.Equal(t, block, wrapped.Block)
	assert.Equal(t, 100.0, wrapped.MaxWidth)
}

func TestSoftWrapGreedy(t *testing.T) {
	// 每个 word 宽 10（不含空格），前进 15
	block := HardWrap(monospace, []Run{NewRun("aa bb cc dd", styled(10, 1))})
	wrapped := SoftWrap(40, block)
	assert.Equal(t, [][]string{{"aa ", "bb ", "cc "}, {"dd"}}, lineTexts(wrapped.Block))
	assert.Equal(t, 45.0, wrapped.Lines[0].Width)
	assert.Equal(t, 2.0*10, wrapped.Height)
}

func TestSoftWrapWidthBound(t *testing.T) {
	text := "lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod"
	block := HardWrap(monospace, []Run{NewRun(text, styled(12, 1.2))})
	for _, maxWidth := range []float64{60, 90, 130, 250} {
		wrapped := SoftWrap(maxWidth, block)
		for _, line := range wrapped.Lines {
			var width float64
			for i, w := range line.Words {
				if i == len(line.Words)-1 {
					width += w.Width
				} else {
					width += w.AdvanceX
				}
			}
			if len(line.Words) > 1 {
				assert.LessOrEqual(t, width, maxWidth)
			}
		}
	}
}

func TestSoftWrapOversizedWord(t *testing.T) {
	block := HardWrap(monospace, []Run{NewRun("a verylongword b", styled(10, 1))})
	wrapped := SoftWrap(30, block)
	assert.Equal(t, [][]string{{"a "}, {"verylongword "}, {"b"}}, lineTexts(wrapped.Block))
	assert.Greater(t, wrapped.Width, 30.0)
}

func TestSoftWrapWordAtomicity(t *testing.T) {
	runs := []Run{NewRun("Hel", styled(10, 1)), NewRun("lo world", styled(20, 1))}
	for _, maxWidth := range []float64{5, 20, 40, 1000} {
		wrapped := Layout(monospace, runs, maxWidth)
		var words []string
		for _, line := range lineTexts(wrapped.Block) {
			words = append(words, line...)
		}
		assert.Equal(t, []string{"Hello ", "world"}, words)
	}
}

func TestLayoutEmpty(t *testing.T) {
	wrapped := Layout(monospace, nil, 100)
	assert.Empty(t, wrapped.Lines)
	assert.Equal(t, 0.0, wrapped.Height)
}
