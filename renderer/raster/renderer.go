// Package raster 将布局结果的一页绘制为 PNG 图像。
//
// 测量与绘制使用同一套 OpenType face：测量固定在 72 DPI（1px = 1pt），
// 绘制时按 DPI/72 放大字号与坐标。
package raster

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/textfit/layout"
	"github.com/ByLCY/textfit/renderer"
	"github.com/ByLCY/textfit/renderer/metrics"
)

func tracer() tracing.Trace {
	return tracing.Select("textfit.raster")
}

// DefaultDPI renders one point as one pixel.
const DefaultDPI = 72

// Options configures the raster renderer.
type Options struct {
	BaseDir string
	// DPI of the output image; zero means DefaultDPI.
	DPI float64
	// Page selects the page to render.
	Page int
	// FrameOutlines strokes the bounds of every frame.
	FrameOutlines bool
}

// Renderer implements layout.Typesetter and renderer.Renderer with
// github.com/fogleman/gg.
type Renderer struct {
	opts  Options
	faces *metrics.Faces
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// New creates a raster renderer.
func New(opts Options) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	return &Renderer{opts: opts}
}

// Measurer 加载字体资源，返回带墨迹包围盒的测量函数。
func (r *Renderer) Measurer(resources map[string]layout.FontResource) (layout.Measurer, error) {
	faces, err := metrics.New(resources, r.opts.BaseDir)
	if err != nil {
		return nil, err
	}
	r.faces = faces
	return faces.Measurer(), nil
}

// Render draws the selected page and returns PNG bytes.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if r.opts.Page < 0 || r.opts.Page >= len(result.Pages) {
		return nil, fmt.Errorf("页码 %d 超出范围（共 %d 页）", r.opts.Page, len(result.Pages))
	}
	if r.faces == nil {
		if _, err := r.Measurer(result.Resources.Fonts); err != nil {
			return nil, err
		}
	}
	page := result.Pages[r.opts.Page]
	scale := r.opts.DPI / DefaultDPI
	w := int(math.Ceil(page.Width * scale))
	h := int(math.Ceil(page.Height * scale))
	tracer().Debugf("raster: page %d at %gdpi, %dx%d px", r.opts.Page, r.opts.DPI, w, h)

	dc := gg.NewContext(w, h)
	bg := layout.Color{R: 255, G: 255, B: 255}
	if page.Background != nil {
		bg = *page.Background
	}
	dc.SetRGB255(bg.R, bg.G, bg.B)
	dc.Clear()

	for _, frame := range page.Frames {
		if r.opts.FrameOutlines {
			dc.SetRGB255(220, 40, 40)
			dc.SetLineWidth(1)
			dc.DrawRectangle(frame.X*scale, frame.Y*scale, frame.Bounds.Width*scale, frame.Bounds.Height*scale)
			dc.Stroke()
		}
		if err := r.drawFrame(dc, frame, scale); err != nil {
			return nil, fmt.Errorf("frame %s: %w", frame.Name, err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawFrame(dc *gg.Context, frame layout.Frame, scale float64) error {
	var firstErr error
	renderer.WalkFrame(frame, r.faces.Vertical, func(run layout.MeasuredRun, x, y float64) {
		if firstErr != nil || strings.TrimSpace(run.Text) == "" {
			return
		}
		face, err := r.faces.Face(run.FontFamily, run.FontSize*scale)
		if err != nil {
			firstErr = err
			return
		}
		col := layout.Color{}
		if run.Color != "" {
			if c, err := layout.ParseColor(run.Color); err == nil {
				col = c
			}
		}
		dc.SetFontFace(face)
		dc.SetRGB255(col.R, col.G, col.B)
		dc.DrawString(run.Text, x*scale, y*scale)
	})
	return firstErr
}
