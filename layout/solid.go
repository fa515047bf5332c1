package layout

import "math"

// SolidFit 把每一行单独缩放到 maxWidth，得到每行等宽的"实心"文本块。
// 宽度为 0 的行保持不变；所有行宽度都为 0 时不做任何缩放。
func SolidFit(maxWidth float64, block Block) WrappedBlock {
	solid := WrappedBlock{MaxWidth: maxWidth}
	var longest float64
	for _, line := range block.Lines {
		longest = math.Max(longest, line.Width)
	}
	for _, line := range block.Lines {
		scaled := line
		if line.Width > 0 && longest > 0 {
			scaled = line.Scale((maxWidth / longest) * (longest / line.Width))
		}
		solid.Lines = append(solid.Lines, scaled)
		solid.Width = math.Max(solid.Width, scaled.Width)
		solid.Height += scaled.Height
	}
	return solid
}
