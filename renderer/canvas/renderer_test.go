package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/textfit/dsl"
	"github.com/ByLCY/textfit/layout"
)

var bodyFont = map[string]layout.FontResource{
	"Body": {Name: "Body", Src: "builtin:goregular"},
}

func TestMeasurerWidthsArePoints(t *testing.T) {
	r := NewRenderer(".")
	m, err := r.Measurer(bodyFont)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	style := layout.Style{FontFamily: "Body", FontSize: 12, LineHeight: 1.2}
	small := m.Measure(layout.NewRun("hello", style))
	style.FontSize = 24
	large := m.Measure(layout.NewRun("hello", style))

	if small.Width <= 0 || small.Width > 12*5 {
		t.Fatalf("implausible width for 12pt text: %g", small.Width)
	}
	if diff := large.Width - 2*small.Width; diff > 0.02*large.Width || diff < -0.02*large.Width {
		t.Fatalf("width should scale with font size: %g vs %g", large.Width, small.Width)
	}
	if small.Box == nil || small.Box.Ascent <= 0 {
		t.Fatalf("expected ink bounding box, got %+v", small.Box)
	}
}

func TestTrailingSpaceOnlyInAdvance(t *testing.T) {
	r := NewRenderer(".")
	m, err := r.Measurer(bodyFont)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run := layout.MeasureRun(m, layout.NewRun("word ", layout.Style{FontFamily: "Body", FontSize: 20}))
	if run.AdvanceX <= run.Width {
		t.Fatalf("expected advance %g > width %g", run.AdvanceX, run.Width)
	}
}

func TestMissingFontFails(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.Measurer(map[string]layout.FontResource{
		"Body": {Name: "Body", Src: "missing.ttf"},
	})
	if err == nil {
		t.Fatalf("expected error for missing font file")
	}
}

func TestUnreadableInjectedFontIgnored(t *testing.T) {
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"Body": {Path: "does-not-exist.ttf"}}})
	if _, err := r.Measurer(bodyFont); err != nil {
		t.Fatalf("unreadable injected font should fall back to src: %v", err)
	}
}

const poster = `
doc Poster v1 {
  meta { title: "Poster" author: "textfit" }
  resources {
    font Body { src: "builtin:goregular" }
    color Rust = #b7410e
    style Heading { font: Body size: 40 line-height: 1.2 color: Rust }
  }
  page 400 300 background #fafafa {
    frame Title at 20 20 size 360 260 {
      fit: "fit"
      align: "center"
      crop: "metrics"
      run Heading { "Sphinx of black quartz, judge my vow." }
    }
  }
}
`

func TestRenderPDF(t *testing.T) {
	doc, err := dsl.ParseString(poster)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	r := NewRendererWithOptions(Options{BaseDir: ".", FrameOutlines: true})
	res, err := layout.Build(doc, nil, layout.BuildOptions{Typesetter: r})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	frame := res.Pages[0].Frames[0]
	if frame.Fit == nil || frame.Fit.Scale <= 0 {
		t.Fatalf("expected a fit result, got %+v", frame.Fit)
	}
	if frame.Block.Width > frame.Bounds.Width {
		t.Fatalf("fitted block too wide: %g > %g", frame.Block.Width, frame.Bounds.Width)
	}

	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderEmpty(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error without pages")
	}
}

func TestParseFontStyle(t *testing.T) {
	cases := map[string]bool{"": false, "italic": true, "Bold Italic": true, "bold": false}
	for in, italic := range cases {
		got := parseFontStyle(in)&canvas.FontItalic != 0
		if got != italic {
			t.Fatalf("parseFontStyle(%q) italic=%v, want %v", in, got, italic)
		}
	}
}
