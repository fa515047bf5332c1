// Package fonts resolves font sources to raw font data.
//
// A source is one of
//
//	builtin:goregular   a Go font compiled into the binary
//	system:DejaVuSans   a font installed on the system
//	fonts/Body.ttf      a file, relative to the document directory
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/ByLCY/textfit/layout"
)

func tracer() tracing.Trace {
	return tracing.Select("textfit.fonts")
}

// DefaultBuiltin is used for runs whose font family is not a declared resource.
const DefaultBuiltin = "goregular"

var builtins = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// Builtins lists the names accepted after "builtin:".
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin 返回内置 Go 字体的 TTF 数据。
func Builtin(name string) ([]byte, error) {
	data, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("未知的内置字体 %q（可用: %s）", name, strings.Join(Builtins(), ", "))
	}
	return data, nil
}

// Load 读取 src 指向的字体数据，相对路径基于 baseDir。
func Load(src, baseDir string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "builtin:"):
		return Builtin(strings.TrimPrefix(src, "builtin:"))
	case strings.HasPrefix(src, "system:"):
		name := strings.TrimPrefix(src, "system:")
		path, err := findfont.Find(name)
		if err != nil {
			return nil, fmt.Errorf("未找到系统字体 %s: %w", name, err)
		}
		tracer().Debugf("fonts: %s is a system font at %s", name, path)
		return readFile(path)
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return readFile(path)
}

// LoadResource 加载字体资源，src 失败时尝试 fallback。
func LoadResource(res layout.FontResource, baseDir string) ([]byte, error) {
	data, err := Load(res.Src, baseDir)
	if err == nil || res.Fallback == "" {
		if err != nil {
			return nil, fmt.Errorf("字体 %s: %w", res.Name, err)
		}
		return data, nil
	}
	tracer().Infof("fonts: %s unavailable (%v), using fallback %s", res.Name, err, res.Fallback)
	data, ferr := Load(res.Fallback, baseDir)
	if ferr != nil {
		return nil, fmt.Errorf("字体 %s: %w（fallback: %v）", res.Name, err, ferr)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
