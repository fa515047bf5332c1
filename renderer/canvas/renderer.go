package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/textfit/fonts"
	"github.com/ByLCY/textfit/layout"
	"github.com/ByLCY/textfit/renderer"
	"github.com/ByLCY/textfit/renderer/metrics"
)

const frameOutlineWidth = 0.2 // mm

func tracer() tracing.Trace {
	return tracing.Select("textfit.canvas")
}

// Renderer measures and draws layout results via github.com/tdewolff/canvas.
// Layout coordinates are points; canvas works in millimeters, conversions
// happen at the boundary.
type Renderer struct {
	baseDir      string
	outlines     bool
	fontBlobs    map[string][]byte // injected, by resource name
	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
	fallback     *fontFamilyEntry
	ink          *metrics.Faces
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	// Fonts injects font data by resource name, taking precedence over src.
	Fonts map[string]Resource
	// FrameOutlines strokes the bounds of every frame.
	FrameOutlines bool
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving fonts.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		outlines:     opts.FrameOutlines,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				tracer().Errorf("canvas: 读取注入字体 %s 失败: %v", name, err)
				continue
			}
			r.fontBlobs[name] = data
		}
	}
	return r
}

// Measurer 实现 layout.Typesetter：宽度由 canvas 塑形测得，墨迹包围盒由 OpenType 度量补充。
func (r *Renderer) Measurer(resources map[string]layout.FontResource) (layout.Measurer, error) {
	ink, err := metrics.NewFaces()
	if err != nil {
		return nil, err
	}
	for name, res := range resources {
		data, err := r.loadFontBytes(res)
		if err != nil {
			return nil, err
		}
		if err := ink.Add(name, data); err != nil {
			return nil, err
		}
		if _, err := r.ensureFontFamily(name, res, data); err != nil {
			return nil, err
		}
	}
	r.ink = ink
	return layout.MetricsFunc(r.measure), nil
}

func (r *Renderer) measure(run layout.Run) layout.TextMetrics {
	face, err := r.fontFace(run, color.Black)
	if err != nil {
		tracer().Errorf("canvas: %v", err)
		return layout.TextMetrics{}
	}
	m := r.ink.Metrics(run)
	m.Width = toPt(face.TextWidth(run.Text))
	return m
}

func (r *Renderer) vertical(run layout.Run) (float64, float64) {
	face, err := r.fontFace(run, color.Black)
	if err != nil {
		return run.FontSize * 0.8, run.FontSize * 0.2
	}
	m := face.Metrics()
	return toPt(m.Ascent), toPt(m.Descent)
}

// Render renders the result into a PDF byte slice, one PDF page per layout page.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if r.ink == nil {
		if _, err := r.Measurer(result.Resources.Fonts); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		w, h := toMm(page.Width), toMm(page.Height)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	if page.Background != nil {
		ctx.SetFillColor(colorFromLayout(*page.Background))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(0, 0, canvas.Rectangle(toMm(page.Width), toMm(page.Height)))
	}
	for _, frame := range page.Frames {
		if r.outlines {
			r.drawOutline(ctx, frame)
		}
		if err := r.drawFrame(ctx, frame); err != nil {
			return fmt.Errorf("frame %s: %w", frame.Name, err)
		}
	}
	return nil
}

func (r *Renderer) drawFrame(ctx *canvas.Context, frame layout.Frame) error {
	var firstErr error
	renderer.WalkFrame(frame, r.vertical, func(run layout.MeasuredRun, x, y float64) {
		if firstErr != nil || strings.TrimSpace(run.Text) == "" {
			return
		}
		col, err := layout.ParseColor(run.Color)
		if run.Color == "" || err != nil {
			col = layout.Color{}
		}
		face, err := r.fontFace(run.Run, colorFromLayout(col))
		if err != nil {
			firstErr = err
			return
		}
		ctx.DrawText(toMm(x), toMm(y), canvas.NewTextLine(face, run.Text, canvas.Left))
	})
	return firstErr
}

// drawOutline 描出文本框边界，便于检查拟合效果。
func (r *Renderer) drawOutline(ctx *canvas.Context, frame layout.Frame) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(color.RGBA{R: 220, G: 40, B: 40, A: 255})
	ctx.SetStrokeWidth(frameOutlineWidth)
	ctx.DrawPath(toMm(frame.X), toMm(frame.Y), canvas.Rectangle(toMm(frame.Bounds.Width), toMm(frame.Bounds.Height)))
}

// fontFace 以 pt 字号创建字体面；未声明的字体族使用内置 Go 字体。
func (r *Renderer) fontFace(run layout.Run, col color.Color) (*canvas.FontFace, error) {
	r.fontMu.Lock()
	entry, ok := r.fontFamilies[run.FontFamily]
	r.fontMu.Unlock()
	if !ok {
		var err error
		if entry, err = r.fallbackFamily(); err != nil {
			return nil, err
		}
	}
	return entry.family.Face(run.FontSize, col, entry.style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string, font layout.FontResource, data []byte) (*fontFamilyEntry, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[name]; ok {
		return entry, nil
	}
	style := parseFontStyle(font.Style)
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[name] = entry
	return entry, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	if blob, ok := r.fontBlobs[font.Name]; ok {
		return blob, nil
	}
	return fonts.LoadResource(font, r.baseDir)
}

func (r *Renderer) fallbackFamily() (*fontFamilyEntry, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.fallback != nil {
		return r.fallback, nil
	}
	data, err := fonts.Builtin(fonts.DefaultBuiltin)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("textfit-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallback = &fontFamilyEntry{family: family, style: canvas.FontRegular}
	return r.fallback, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
