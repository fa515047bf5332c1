// Package metrics measures runs with golang.org/x/image OpenType faces.
// All values are in points: faces are created at 72 DPI so one pixel of
// the face equals one point.
package metrics

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textfit/fonts"
	"github.com/ByLCY/textfit/layout"
)

func tracer() tracing.Trace {
	return tracing.Select("textfit.metrics")
}

const pointDPI = 72

type faceKey struct {
	family string
	size   float64
}

// Faces 按字体资源名缓存解析后的字体与各字号的 face，可并发使用。
type Faces struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	faces    map[faceKey]font.Face
	fallback *opentype.Font
}

// NewFaces returns an empty cache that measures with the default Go font.
func NewFaces() (*Faces, error) {
	data, err := fonts.Builtin(fonts.DefaultBuiltin)
	if err != nil {
		return nil, err
	}
	fallback, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析默认字体失败: %w", err)
	}
	return &Faces{
		fonts:    map[string]*opentype.Font{},
		faces:    map[faceKey]font.Face{},
		fallback: fallback,
	}, nil
}

// New parses every declared font resource; sources are resolved against baseDir.
func New(resources map[string]layout.FontResource, baseDir string) (*Faces, error) {
	f, err := NewFaces()
	if err != nil {
		return nil, err
	}
	for name, res := range resources {
		data, err := fonts.LoadResource(res, baseDir)
		if err != nil {
			return nil, err
		}
		if err := f.Add(name, data); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Add registers font data under a family name.
func (f *Faces) Add(family string, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("解析字体 %s 失败: %w", family, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fonts[family] = parsed
	return nil
}

// Face returns the face of family at size points. Unknown families use
// the default Go font.
func (f *Faces) Face(family string, size float64) (font.Face, error) {
	key := faceKey{family: family, size: size}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	sfnt, ok := f.fonts[family]
	if !ok {
		tracer().Debugf("metrics: unknown family %q, using %s", family, fonts.DefaultBuiltin)
		sfnt = f.fallback
	}
	face, err := opentype.NewFace(sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     pointDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	f.faces[key] = face
	return face, nil
}

// Metrics 测量 run 的前进宽度与字形墨迹包围盒。
func (f *Faces) Metrics(run layout.Run) layout.TextMetrics {
	face, err := f.Face(run.FontFamily, run.FontSize)
	if err != nil {
		tracer().Errorf("metrics: %v", err)
		return layout.TextMetrics{}
	}
	bounds, advance := font.BoundString(face, run.Text)
	return layout.TextMetrics{
		Width: toFloat(advance),
		BoundingBox: layout.BoundingBox{
			Ascent:  -toFloat(bounds.Min.Y),
			Descent: toFloat(bounds.Max.Y),
			Left:    -toFloat(bounds.Min.X),
			Right:   toFloat(bounds.Max.X),
		},
	}
}

// Measurer returns f as a layout.Measurer with rich metrics.
func (f *Faces) Measurer() layout.Measurer {
	return layout.MetricsFunc(f.Metrics)
}

// Vertical reports the font level ascent and descent of the run's face.
func (f *Faces) Vertical(run layout.Run) (ascent, descent float64) {
	face, err := f.Face(run.FontFamily, run.FontSize)
	if err != nil {
		return run.FontSize * 0.8, run.FontSize * 0.2
	}
	m := face.Metrics()
	return toFloat(m.Ascent), toFloat(m.Descent)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
