package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/textfit/dsl"
	"github.com/ByLCY/textfit/layout"
)

const card = `
doc Card v1 {
  resources {
    font Body { src: "builtin:goregular" }
    font Bold { src: "builtin:gobold" }
  }
  page 200 100 background #102030 {
    frame Name at 10 10 size 180 80 {
      fit: "shrink"
      run font Bold size 30 color #ffffff { "Hello ${user.name}" }
    }
  }
}
`

func build(t *testing.T, r *Renderer) *layout.Result {
	t.Helper()
	doc, err := dsl.ParseString(card)
	require.NoError(t, err)
	data := map[string]any{"user": map[string]any{"name": "Ada"}}
	res, err := layout.Build(doc, data, layout.BuildOptions{Typesetter: r})
	require.NoError(t, err)
	return res
}

func TestRenderPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textfit.raster")
	defer teardown()

	r := New(Options{DPI: 144})
	res := build(t, r)
	frame := res.Pages[0].Frames[0]
	require.NotNil(t, frame.Fit)
	assert.LessOrEqual(t, frame.Fit.Scale, 1.0)
	var text string
	layout.DrawBlock(frame.Block, 0, 0, func(run layout.MeasuredRun, _, _ float64, _ layout.Word, _ layout.Line, _ layout.WrappedBlock) {
		text += run.Text
	})
	assert.Equal(t, "Hello Ada", text)

	out, err := r.Render(res)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// corner keeps the page background
	cr, cg, cb, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0x10, 0x20, 0x30}, []uint32{cr >> 8, cg >> 8, cb >> 8})
}

func TestRenderPageOutOfRange(t *testing.T) {
	r := New(Options{Page: 3})
	res := build(t, r)
	_, err := r.Render(res)
	assert.Error(t, err)
}

func TestDefaultDPI(t *testing.T) {
	r := New(Options{})
	assert.Equal(t, float64(DefaultDPI), r.opts.DPI)
}
