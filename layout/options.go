package layout

// BuildOptions 配置布局阶段所需的依赖，例如测量后端。
type BuildOptions struct {
	Typesetter Typesetter
	// Fit overrides the fitter defaults before frame level settings apply.
	Fit *FitOptions
}

// Typesetter 由渲染器实现：根据文档声明的字体资源提供测量函数。
// 测量单位与文档一致（pt）。
type Typesetter interface {
	Measurer(fonts map[string]FontResource) (Measurer, error)
}
