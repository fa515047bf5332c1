package layout

// 该文件定义文档级的布局结果与资源描述，供构建、渲染与调试 JSON 共用。
// 所有长度单位均为 pt。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource  `json:"fonts"`
	Colors map[string]Color         `json:"colors"`
	Styles map[string]StyleResource `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:* 形式。
// Run 的 FontFamily 保存的是字体资源名。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Style    string `json:"style,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// StyleResource 是可继承的命名样式，Props 为原始属性。
type StyleResource struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// Page 记录页面尺寸与页面上的文本框。
type Page struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background *Color  `json:"background,omitempty"`
	Frames     []Frame `json:"frames"`
}

// FrameMode 决定文本框内容如何适配边界。
type FrameMode string

const (
	ModeFit     FrameMode = "fit"     // 放大或缩小
	ModeShrink  FrameMode = "shrink"  // 只缩小
	ModeSolid   FrameMode = "solid"   // 每个硬行拉伸到边界宽度
	ModeContain FrameMode = "contain" // 按宽度换行后整体缩放到边界内
	ModeWrap    FrameMode = "wrap"    // 只按宽度换行
)

// Frame 是页面上一个已排好版的文本框，(X, Y) 为其左上角。
type Frame struct {
	Name   string       `json:"name"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Bounds Size         `json:"bounds"`
	Align  Align        `json:"align"`
	Mode   FrameMode    `json:"mode"`
	Crop   bool         `json:"crop,omitempty"` // 首行按墨迹顶部对齐
	Block  WrappedBlock `json:"block"`
	Fit    *FitResult   `json:"fit,omitempty"`
}

// DocumentMeta 保存输出文件的元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
