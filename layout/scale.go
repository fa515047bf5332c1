package layout

// 缩放是纯算术变换：对节点及其所有子节点统一乘以同一比例，不会重新测量文本。

// Scale returns a copy with font size, extents and bounding box scaled.
func (r MeasuredRun) Scale(s float64) MeasuredRun {
	r.FontSize *= s
	r.Width *= s
	r.Height *= s
	r.AdvanceX *= s
	if r.Box != nil {
		r.Box = &BoundingBox{
			Ascent:  r.Box.Ascent * s,
			Descent: r.Box.Descent * s,
			Left:    r.Box.Left * s,
			Right:   r.Box.Right * s,
		}
	}
	return r
}

// Scale returns a scaled copy of the word and its runs.
func (w Word) Scale(s float64) Word {
	runs := make([]MeasuredRun, len(w.Runs))
	for i, r := range w.Runs {
		runs[i] = r.Scale(s)
	}
	w.Runs = runs
	w.Width *= s
	w.Height *= s
	w.AdvanceX *= s
	w.OpticalLeft = scalePtr(w.OpticalLeft, s)
	w.OpticalRight = scalePtr(w.OpticalRight, s)
	return w
}

// Scale returns a scaled copy of the line and its words.
func (l Line) Scale(s float64) Line {
	words := make([]Word, len(l.Words))
	for i, w := range l.Words {
		words[i] = w.Scale(s)
	}
	l.Words = words
	l.Width *= s
	l.Height *= s
	l.OpticalLeft = scalePtr(l.OpticalLeft, s)
	l.OpticalRight = scalePtr(l.OpticalRight, s)
	return l
}

// Scale returns a scaled copy of the block and its lines.
func (b Block) Scale(s float64) Block {
	lines := make([]Line, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = l.Scale(s)
	}
	b.Lines = lines
	b.Width *= s
	b.Height *= s
	return b
}

// Scale scales the block together with its wrap width.
func (b WrappedBlock) Scale(s float64) WrappedBlock {
	return WrappedBlock{Block: b.Block.Scale(s), MaxWidth: b.MaxWidth * s}
}

func scalePtr(v *float64, s float64) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(*v * s)
}
