// Package layout 将带样式的文本片段（run）排成由行组成的文本块，并搜索能让文本块
// 最佳填满目标矩形的统一缩放比例。
//
// 流水线：run → word → line → block。测量由调用方注入（Measurer），
// 本包从不接触字体或绘制表面。
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'textfit.layout'.
func tracer() tracing.Trace {
	return tracing.Select("textfit.layout")
}
