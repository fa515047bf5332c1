package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/ByLCY/textfit/dsl"
	"github.com/ByLCY/textfit/layout"
	"github.com/ByLCY/textfit/renderer"
	canvasrenderer "github.com/ByLCY/textfit/renderer/canvas"
	"github.com/ByLCY/textfit/renderer/raster"
)

var traceKeys = []string{"textfit.layout", "textfit.fonts", "textfit.metrics", "textfit.canvas", "textfit.raster"}

func main() {
	input := flag.String("in", "examples/poster.fit", "DSL 文件路径")
	output := flag.String("out", "output/poster.pdf", "输出路径，.pdf 使用 canvas，.png 使用栅格渲染")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据，以 @ 开头表示文件")
	dpi := flag.Float64("dpi", raster.DefaultDPI, "PNG 输出分辨率")
	page := flag.Int("page", 1, "PNG 输出的页码")
	outlines := flag.Bool("outline", false, "描出文本框边界")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()

	if err := setupTracing(*tlevel); err != nil {
		log.Fatalf("配置日志失败: %v", err)
	}

	inputData, err := loadData(*dataJSON)
	if err != nil {
		log.Fatalf("解析 data JSON 失败: %v", err)
	}

	baseDir := filepath.Dir(*input)
	var r renderer.Renderer
	switch ext := strings.ToLower(filepath.Ext(*output)); ext {
	case ".png":
		r = raster.New(raster.Options{BaseDir: baseDir, DPI: *dpi, Page: *page - 1, FrameOutlines: *outlines})
	case ".pdf":
		r = canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, FrameOutlines: *outlines})
	default:
		log.Fatalf("不支持的输出格式 %q（可用 .pdf 或 .png）", ext)
	}
	if err := run(*input, *output, *debug, inputData, r); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	pterm.Success.Printfln("已生成：%s", *output)
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// loadData 解析 -data：可直接给出 JSON，或以 @path 指向 JSON 文件。
func loadData(arg string) (any, error) {
	if arg == "" {
		return nil, nil
	}
	raw := []byte(arg)
	if strings.HasPrefix(arg, "@") {
		var err error
		if raw, err = os.ReadFile(strings.TrimPrefix(arg, "@")); err != nil {
			return nil, err
		}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// run 串联解析、布局与渲染。
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	ts, ok := r.(layout.Typesetter)
	if !ok {
		return fmt.Errorf("renderer 未实现排版接口")
	}
	result, err := layout.Build(doc, data, layout.BuildOptions{Typesetter: ts})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	for _, p := range result.Pages {
		for _, f := range p.Frames {
			if f.Fit != nil {
				pterm.Info.Printfln("%s: scale %.3f, %s (%s, %d iterations)",
					f.Name, f.Fit.Scale, f.Fit.Strategy, f.Fit.FoundDuring, f.Fit.Iterations)
			}
		}
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	out, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
