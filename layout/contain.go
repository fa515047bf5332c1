package layout

import "math"

// Contain scales an already wrapped block uniformly so it fits inside
// bounds, keeping its line breaks. Zero dimensions of the block do not
// constrain the scale; an empty block is returned at scale 1.
func Contain(bounds Size, block Block) WrappedBlock {
	scale := math.Inf(1)
	if block.Width > 0 {
		scale = bounds.Width / block.Width
	}
	if block.Height > 0 {
		scale = math.Min(scale, bounds.Height/block.Height)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	return WrappedBlock{Block: block.Scale(scale), MaxWidth: bounds.Width}
}
