package layout

// 该文件定义排版模型：run、word、line、block 以及拟合结果。
// 所有节点都是值类型，缩放与换行总是返回新的副本。

// Style 描述一个 run 的统一样式。
type Style struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"` // 行高倍数
	Color      string  `json:"color,omitempty"`
}

// DefaultStyle returns sans-serif at 16 with a 1.2 line height.
func DefaultStyle() Style {
	return Style{FontFamily: "sans-serif", FontSize: 16, LineHeight: 1.2}
}

// Run 是共享同一样式的一段文本。
type Run struct {
	Text string `json:"text"`
	Style
}

// NewRun creates a run; zero fields of style fall back to DefaultStyle.
func NewRun(text string, style Style) Run {
	def := DefaultStyle()
	if style.FontFamily == "" {
		style.FontFamily = def.FontFamily
	}
	if style.FontSize == 0 {
		style.FontSize = def.FontSize
	}
	if style.LineHeight == 0 {
		style.LineHeight = def.LineHeight
	}
	return Run{Text: text, Style: style}
}

// BoundingBox 为字形墨迹的实际包围盒（光学度量），相对于基线原点。
type BoundingBox struct {
	Ascent  float64 `json:"actualBoundingBoxAscent"`
	Descent float64 `json:"actualBoundingBoxDescent"`
	Left    float64 `json:"actualBoundingBoxLeft"`
	Right   float64 `json:"actualBoundingBoxRight"`
}

// MeasuredRun 是测量后的 run。
// Width 不含末尾空格，AdvanceX 含末尾空格，Height = FontSize * LineHeight。
type MeasuredRun struct {
	Run
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	AdvanceX float64      `json:"advanceX"`
	Box      *BoundingBox `json:"box,omitempty"`
}

// Word 是一组不可拆分到两行的 run。
type Word struct {
	Runs         []MeasuredRun `json:"runs"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	AdvanceX     float64       `json:"advanceX"`
	OpticalLeft  *float64      `json:"opticalLeft,omitempty"`
	OpticalRight *float64      `json:"opticalRight,omitempty"`
}

// Line 的宽度是各 word 的 AdvanceX 之和（包括最后一个 word 的末尾空格），高度取最高的 word。
type Line struct {
	Words        []Word   `json:"words"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	OpticalLeft  *float64 `json:"opticalLeft,omitempty"`
	OpticalRight *float64 `json:"opticalRight,omitempty"`
}

// Block 的宽度取最宽的行，高度为各行高度之和。
type Block struct {
	Lines  []Line  `json:"lines"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WrappedBlock 额外记录换行时使用的宽度上限，居中/右对齐需要它。
type WrappedBlock struct {
	Block
	MaxWidth float64 `json:"maxWidth"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width*Height.
func (s Size) Area() float64 { return s.Width * s.Height }

// Size returns the block's extent.
func (b Block) Size() Size { return Size{Width: b.Width, Height: b.Height} }

func floatPtr(v float64) *float64 { return &v }
