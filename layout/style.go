package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// resolveRunStyle 将合并后的样式属性（font、size、line-height、color）转换为 Style。
func resolveRunStyle(attrs map[string]string, res ResourceSet) (Style, error) {
	style := DefaultStyle()
	if font := attrs["font"]; font != "" {
		if _, ok := res.Fonts[font]; !ok {
			return style, fmt.Errorf("未定义的字体 %s", font)
		}
		style.FontFamily = font
	}
	if v := attrs["size"]; v != "" {
		size, err := lengthPT(v)
		if err != nil {
			return style, fmt.Errorf("字号 %q: %w", v, err)
		}
		if size <= 0 {
			return style, fmt.Errorf("字号必须为正，实际为 %s", v)
		}
		style.FontSize = size
	}
	if v := attrs["line-height"]; v != "" {
		spec, err := ParseLineHeight(v)
		if err != nil {
			return style, err
		}
		style.LineHeight = spec.FactorFor(style.FontSize)
	}
	if v := attrs["color"]; v != "" {
		c, err := resolveColor(v, res)
		if err != nil {
			return style, err
		}
		style.Color = c.Hex()
	}
	return style, nil
}

// resolveColor 先查找命名颜色，再按十六进制解析。
func resolveColor(value string, res ResourceSet) (Color, error) {
	if c, ok := res.Colors[value]; ok {
		return c, nil
	}
	return ParseColor(value)
}

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa（忽略 alpha）。
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6, 8:
		v = v[:6]
	default:
		return Color{}, fmt.Errorf("无效的颜色 %q", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无效的颜色 %q", value)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
