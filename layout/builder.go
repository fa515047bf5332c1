package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/textfit/binding"
	"github.com/ByLCY/textfit/dsl"
)

// Build 根据 DSL AST 生成页面与文本框的布局结果。
// 每个 frame 的 run 先经 binding 插值，再按 frame 的 fit 模式排版。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	measurer, err := opts.Typesetter.Measurer(res.Fonts)
	if err != nil {
		return nil, fmt.Errorf("layout: 初始化测量后端失败: %w", err)
	}
	defaults := DefaultFitOptions()
	if opts.Fit != nil {
		defaults = *opts.Fit
	}

	b := &builder{res: res, data: data, measurer: measurer, defaults: defaults}
	var pages []Page
	for _, section := range doc.Sections {
		if section.Page == nil {
			continue
		}
		page, err := b.buildPage(section.Page)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("文档中缺少 page 段落")
	}
	tracer().Infof("layout: %d page(s) built", len(pages))

	return &Result{
		Pages:     pages,
		Resources: res,
		Meta:      collectMeta(doc),
	}, nil
}

type builder struct {
	res      ResourceSet
	data     any
	measurer Measurer
	defaults FitOptions
}

func (b *builder) buildPage(section *dsl.PageSection) (Page, error) {
	width, height, rest, err := resolvePageSize(section.Params)
	if err != nil {
		return Page{}, err
	}
	page := Page{Width: width, Height: height}
	attrs := pairs(rest)
	if v, ok := attrs["background"]; ok {
		c, err := resolveColor(v, b.res)
		if err != nil {
			return Page{}, fmt.Errorf("page background: %w", err)
		}
		page.Background = &c
	}
	if section.Block == nil {
		return Page{}, fmt.Errorf("page 段落缺少内容")
	}
	for _, st := range section.Block.Statements {
		if st.Command == nil {
			continue
		}
		switch st.Command.Name {
		case "frame":
			frame, err := b.buildFrame(st.Command, page)
			if err != nil {
				return Page{}, err
			}
			page.Frames = append(page.Frames, frame)
		default:
			tracer().Debugf("layout: ignoring page command %q", st.Command.Name)
		}
	}
	return page, nil
}

// frameSpec 汇总一个 frame 的几何与拟合设置。
type frameSpec struct {
	name   string
	x, y   float64
	bounds Size
	mode   FrameMode
	align  Align
	style  string
	fit    FitOptions
}

func (b *builder) buildFrame(cmd *dsl.Command, page Page) (Frame, error) {
	spec, err := b.parseFrameArgs(cmd.Args, page)
	if err != nil {
		return Frame{}, err
	}
	if cmd.Block == nil {
		return Frame{}, fmt.Errorf("frame %s 缺少内容", spec.name)
	}
	var runs []Run
	for _, st := range cmd.Block.Statements {
		switch {
		case st.Assignment != nil:
			if err := spec.assign(st.Assignment, b.res); err != nil {
				return Frame{}, fmt.Errorf("frame %s: %w", spec.name, err)
			}
		case st.Text != nil:
			run, err := b.composeRun(spec.style, nil, string(st.Text.Value))
			if err != nil {
				return Frame{}, fmt.Errorf("frame %s: %w", spec.name, err)
			}
			runs = append(runs, run)
		case st.Command != nil && st.Command.Name == "run":
			run, err := b.buildRun(st.Command, spec.style)
			if err != nil {
				return Frame{}, fmt.Errorf("frame %s: %w", spec.name, err)
			}
			runs = append(runs, run)
		case st.Command != nil:
			tracer().Debugf("layout: frame %s ignores command %q", spec.name, st.Command.Name)
		}
	}

	frame := Frame{
		Name:   spec.name,
		X:      spec.x,
		Y:      spec.y,
		Bounds: spec.bounds,
		Align:  spec.align,
		Mode:   spec.mode,
		Crop:   spec.fit.CropToMetrics,
	}
	hard := HardWrap(b.measurer, runs)
	switch spec.mode {
	case ModeFit, ModeShrink:
		fitter, err := NewFitter(spec.bounds, spec.fit)
		if err != nil {
			return Frame{}, fmt.Errorf("frame %s: %w", spec.name, err)
		}
		result, err := fitter.Fit(hard)
		if err != nil {
			return Frame{}, fmt.Errorf("frame %s: %w", spec.name, err)
		}
		tracer().Debugf("layout: frame %s fitted at %.4f (%s during %s, %d iterations)",
			spec.name, result.Scale, result.Strategy, result.FoundDuring, result.Iterations)
		frame.Block = result.Wrapped
		frame.Fit = &result
	case ModeSolid:
		frame.Block = SolidFit(spec.bounds.Width, hard)
	case ModeContain:
		frame.Block = Contain(spec.bounds, SoftWrap(spec.bounds.Width, hard).Block)
	case ModeWrap:
		frame.Block = SoftWrap(spec.bounds.Width, hard)
	}
	return frame, nil
}

// parseFrameArgs 解析 `frame Name at X Y size W H`。缺省时 frame 覆盖整页。
func (b *builder) parseFrameArgs(args []*dsl.Lexeme, page Page) (frameSpec, error) {
	spec := frameSpec{
		bounds: Size{Width: page.Width, Height: page.Height},
		mode:   ModeFit,
		fit:    b.defaults,
	}
	i := 0
	if len(args) > 0 && args[0].Type == "Ident" && args[0].Value != "at" && args[0].Value != "size" {
		spec.name = args[0].Value
		i = 1
	}
	if spec.name == "" {
		spec.name = fmt.Sprintf("frame%d", len(page.Frames)+1)
	}
	for i < len(args) {
		key := args[i].Value
		switch key {
		case "at", "size":
			if i+2 >= len(args) {
				return spec, fmt.Errorf("frame %s: %s 需要两个长度", spec.name, key)
			}
			a, err := lengthPT(args[i+1].Value)
			if err != nil {
				return spec, fmt.Errorf("frame %s: %w", spec.name, err)
			}
			c, err := lengthPT(args[i+2].Value)
			if err != nil {
				return spec, fmt.Errorf("frame %s: %w", spec.name, err)
			}
			if key == "at" {
				spec.x, spec.y = a, c
			} else {
				spec.bounds = Size{Width: a, Height: c}
			}
			i += 3
		default:
			return spec, fmt.Errorf("frame %s: 未知参数 %q", spec.name, key)
		}
	}
	return spec, nil
}

// assign 应用 frame 块内的 key: value 设置。
func (s *frameSpec) assign(a *dsl.Assignment, res ResourceSet) error {
	value := valueToString(a.Value)
	switch a.Key {
	case "fit", "mode":
		switch FrameMode(strings.ToLower(value)) {
		case ModeFit:
			s.mode, s.fit.Type = ModeFit, FitGrow
		case ModeShrink:
			s.mode, s.fit.Type = ModeShrink, FitShrink
		case ModeSolid:
			s.mode = ModeSolid
		case ModeContain:
			s.mode = ModeContain
		case ModeWrap:
			s.mode = ModeWrap
		default:
			return fmt.Errorf("未知的 fit 模式 %q", value)
		}
	case "tolerance":
		v, err := lengthPT(value)
		if err != nil {
			return err
		}
		s.fit.Tolerance = v
	case "scale-step":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("scale-step 无效: %w", err)
		}
		s.fit.ScaleStep = v
	case "max-iterations":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max-iterations 无效: %w", err)
		}
		s.fit.MaxIterations = v
	case "min-delta":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("min-delta 无效: %w", err)
		}
		s.fit.MinBoundsDelta = v
	case "align":
		align, err := ParseAlign(value)
		if err != nil {
			return err
		}
		s.align = align
	case "crop":
		switch strings.ToLower(value) {
		case "metrics", "true":
			s.fit.CropToMetrics = true
		case "none", "false", "":
			s.fit.CropToMetrics = false
		default:
			return fmt.Errorf("未知的 crop 设置 %q", value)
		}
	case "style":
		if _, ok := res.Styles[value]; !ok {
			return fmt.Errorf("未定义的样式 %s", value)
		}
		s.style = value
	default:
		return fmt.Errorf("未知的 frame 属性 %q", a.Key)
	}
	return nil
}

// buildRun 解析 `run [Style] [key value]... { "text" ... }`。
func (b *builder) buildRun(cmd *dsl.Command, frameStyle string) (Run, error) {
	styleName, attrs := parseArgs(cmd.Args, true)
	if styleName == "" {
		styleName = frameStyle
	}
	if cmd.Block != nil {
		for _, st := range cmd.Block.Statements {
			if st.Assignment != nil {
				attrs[st.Assignment.Key] = valueToString(st.Assignment.Value)
			}
		}
	}
	return b.composeRun(styleName, attrs, extractText(cmd.Block))
}

func (b *builder) composeRun(styleName string, inline map[string]string, text string) (Run, error) {
	if styleName != "" {
		if _, ok := b.res.Styles[styleName]; !ok {
			return Run{}, fmt.Errorf("未定义的样式 %s", styleName)
		}
	}
	attrs := mergeStyleAttributes(styleName, inline, b.res.Styles)
	style, err := resolveRunStyle(attrs, b.res)
	if err != nil {
		return Run{}, err
	}
	return NewRun(binding.Interpolate(text, b.data), style), nil
}

// collectResources 收集 resources 段落中的 font、color、style 定义。
func collectResources(doc *dsl.Document) (ResourceSet, error) {
	set := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
		Styles: map[string]StyleResource{},
	}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			cmd := stmt.Command
			switch cmd.Name {
			case "font":
				font := parseFontResource(cmd)
				if font.Name == "" {
					return set, fmt.Errorf("font 资源缺少名称")
				}
				if font.Src == "" {
					return set, fmt.Errorf("font %s 缺少 src", font.Name)
				}
				set.Fonts[font.Name] = font
			case "color":
				name, value := parseColorResource(cmd)
				if name == "" || value == "" {
					return set, fmt.Errorf("color 资源格式错误")
				}
				c, err := ParseColor(value)
				if err != nil {
					return set, fmt.Errorf("color %s: %w", name, err)
				}
				set.Colors[name] = c
			case "style":
				style := parseStyleResource(cmd)
				if style.Name == "" {
					return set, fmt.Errorf("style 资源缺少名称")
				}
				set.Styles[style.Name] = style
			default:
				return set, fmt.Errorf("未知的资源类型 %q", cmd.Name)
			}
		}
	}
	resolved, err := resolveStyles(set.Styles)
	if err != nil {
		return set, err
	}
	set.Styles = resolved
	for name, style := range set.Styles {
		if font := style.Props["font"]; font != "" {
			if _, ok := set.Fonts[font]; !ok {
				return set, fmt.Errorf("style %s 引用了未定义的字体 %s", name, font)
			}
		}
	}
	return set, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{Creator: "textfit"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch stmt.Assignment.Key {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	return meta
}

func parseFontResource(cmd *dsl.Command) FontResource {
	font := FontResource{}
	if len(cmd.Args) > 0 {
		font.Name = cmd.Args[0].Value
	}
	if cmd.Block == nil {
		return font
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		switch stmt.Assignment.Key {
		case "src":
			font.Src = valueToString(stmt.Assignment.Value)
		case "style":
			font.Style = valueToString(stmt.Assignment.Value)
		case "fallback":
			font.Fallback = valueToString(stmt.Assignment.Value)
		}
	}
	return font
}

// parseStyleResource 解析 `style Name [extends Base] { key: value ... }`。
func parseStyleResource(cmd *dsl.Command) StyleResource {
	style := StyleResource{Props: map[string]string{}}
	if len(cmd.Args) > 0 {
		style.Name = cmd.Args[0].Value
	}
	for i := 1; i+1 < len(cmd.Args); i++ {
		if cmd.Args[i].Value == "extends" {
			style.Extends = cmd.Args[i+1].Value
			break
		}
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		style.Props[stmt.Assignment.Key] = valueToString(stmt.Assignment.Value)
	}
	return style
}

// resolveStyles 展开 extends 链，子样式属性覆盖父样式，检测循环继承。
func resolveStyles(styles map[string]StyleResource) (map[string]StyleResource, error) {
	resolved := make(map[string]StyleResource, len(styles))
	visiting := map[string]bool{}

	var visit func(name string) (StyleResource, error)
	visit = func(name string) (StyleResource, error) {
		if s, ok := resolved[name]; ok {
			return s, nil
		}
		s, ok := styles[name]
		if !ok {
			return StyleResource{}, fmt.Errorf("未定义的样式 %s", name)
		}
		if visiting[name] {
			return StyleResource{}, fmt.Errorf("样式 %s 存在循环继承", name)
		}
		visiting[name] = true
		props := map[string]string{}
		if s.Extends != "" {
			parent, err := visit(s.Extends)
			if err != nil {
				return StyleResource{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range s.Props {
			props[k] = v
		}
		visiting[name] = false
		out := StyleResource{Name: s.Name, Extends: s.Extends, Props: props}
		resolved[name] = out
		return out, nil
	}

	for name := range styles {
		if _, err := visit(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// parseColorResource 解析 `color Name = #rrggbb`，值取最后一个参数。
func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) < 2 {
		return "", ""
	}
	return cmd.Args[0].Value, cmd.Args[len(cmd.Args)-1].Value
}

var namedPages = map[string]Size{
	"a3":     {Width: 297 * MmToPt, Height: 420 * MmToPt},
	"a4":     {Width: 210 * MmToPt, Height: 297 * MmToPt},
	"a5":     {Width: 148 * MmToPt, Height: 210 * MmToPt},
	"letter": {Width: 612, Height: 792},
}

// resolvePageSize 解析 `page W H` 或 `page A4 [landscape]`，返回剩余参数。
func resolvePageSize(params []*dsl.Lexeme) (float64, float64, []*dsl.Lexeme, error) {
	if len(params) == 0 {
		return 0, 0, nil, fmt.Errorf("page 缺少尺寸")
	}
	if size, ok := namedPages[strings.ToLower(params[0].Value)]; ok {
		rest := params[1:]
		if len(rest) > 0 && rest[0].Value == "landscape" {
			size = Size{Width: size.Height, Height: size.Width}
			rest = rest[1:]
		} else if len(rest) > 0 && rest[0].Value == "portrait" {
			rest = rest[1:]
		}
		return size.Width, size.Height, rest, nil
	}
	if len(params) < 2 {
		return 0, 0, nil, fmt.Errorf("page 需要宽和高")
	}
	w, err := lengthPT(params[0].Value)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("page 宽度: %w", err)
	}
	h, err := lengthPT(params[1].Value)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("page 高度: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, nil, fmt.Errorf("page 尺寸必须为正，实际为 %gx%g", w, h)
	}
	return w, h, params[2:], nil
}

// parseArgs 将参数解析为样式名与 key/value 对。allowStyle 时第一个标识符视为样式名。
func parseArgs(args []*dsl.Lexeme, allowStyle bool) (string, map[string]string) {
	style := ""
	start := 0
	if allowStyle && len(args) > 0 && args[0].Type == "Ident" && !runAttributes[args[0].Value] {
		style = args[0].Value
		start = 1
	}
	return style, pairs(args[start:])
}

var runAttributes = map[string]bool{
	"font": true, "size": true, "line-height": true, "color": true,
}

func pairs(args []*dsl.Lexeme) map[string]string {
	attrs := map[string]string{}
	for i := 0; i+1 < len(args); i += 2 {
		attrs[args[i].Value] = args[i+1].Value
	}
	return attrs
}

// mergeStyleAttributes 以命名样式为底，叠加行内属性。
func mergeStyleAttributes(style string, inline map[string]string, styles map[string]StyleResource) map[string]string {
	merged := map[string]string{}
	if s, ok := styles[style]; ok {
		for k, v := range s.Props {
			merged[k] = v
		}
	}
	for k, v := range inline {
		merged[k] = v
	}
	return merged
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var sb strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			sb.WriteString(string(stmt.Text.Value))
		}
	}
	return sb.String()
}

func lengthPT(value string) (float64, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.ToPT(), nil
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	case val.Array != nil:
		return strings.Join(valueToStringSlice(val), ", ")
	}
	return ""
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, v := range val.Array.Values {
		out = append(out, valueToString(v))
	}
	return out
}
