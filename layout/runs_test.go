package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRunOnSpaces(t *testing.T) {
	s := styled(10, 1)
	assert.Equal(t, []string{"a ", "b ", "c"}, texts(SplitRunOnSpaces(NewRun("a b c", s))))
	assert.Equal(t, []string{"a ", ""}, texts(SplitRunOnSpaces(NewRun("a ", s))))
	assert.Equal(t, []string{"a ", "b"}, texts(SplitRunOnSpaces(NewRun("a\tb", s))))
	assert.Equal(t, []string{"word"}, texts(SplitRunOnSpaces(NewRun("word", s))))

	for _, r := range SplitRunOnSpaces(NewRun("x y", s)) {
		assert.Equal(t, s, r.Style)
	}
}

func TestSplitRunOnNewlines(t *testing.T) {
	s := styled(10, 1)
	assert.Equal(t, []string{"a", "b"}, texts(SplitRunOnNewlines(NewRun("a\r\nb", s))))
	assert.Equal(t, []string{"", "", ""}, texts(SplitRunOnNewlines(NewRun("\n\n", s))))
}

func TestSplitLinesCountsNewlines(t *testing.T) {
	s := styled(10, 1)
	runs := []Run{NewRun("one\ntw", s), NewRun("o\n", s), NewRun("three", s)}
	lines := SplitLines(runs)
	if assert.Len(t, lines, 3) {
		assert.Equal(t, []string{"one"}, texts(lines[0]))
		assert.Equal(t, []string{"tw", "o"}, texts(lines[1]))
		assert.Equal(t, []string{"", "three"}, texts(lines[2]))
	}
}

func TestGroupWords(t *testing.T) {
	s := styled(10, 1)
	frags := SplitRunsOnSpaces([]Run{NewRun("Hel", s), NewRun("lo wor", s), NewRun("ld ", s)})
	groups := GroupWords(frags)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, []string{"Hel", "lo "}, texts(groups[0]))
		assert.Equal(t, []string{"wor", "ld "}, texts(groups[1]))
	}
	assert.Empty(t, GroupWords([]Run{NewRun("", s)}))
}

// 拼接所有 word 的文本应当还原原始文本（去掉空片段）。
func TestWordsKeepText(t *testing.T) {
	s := styled(10, 1)
	in := "The quick  brown fox"
	var out string
	for _, w := range Words(monospace, []Run{NewRun(in, s)}) {
		out += wordText(w)
	}
	assert.Equal(t, in, out)
}
