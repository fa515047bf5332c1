// Package binding 将数据插入 run 文本：${path.to.value} 形式的占位符
// 会被替换为 data 中对应路径的值。
package binding

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path} 替换为 data 中的值。
// ${path|默认值} 在路径不存在时使用默认值；没有默认值时保留原占位符。
func Interpolate(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		expr := placeholder.FindStringSubmatch(match)[1]
		path, fallback, hasFallback := strings.Cut(expr, "|")
		path = strings.TrimSpace(path)
		if path != "" && data != nil {
			if val, ok := Lookup(data, path); ok {
				return fmt.Sprint(val)
			}
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// Lookup resolves a dotted path with optional [n] indexes, e.g.
// "items[0].name", against maps, slices and exported struct fields.
func Lookup(data any, path string) (any, bool) {
	current := reflect.ValueOf(data)
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			if current, ok = field(current, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = index(current, idx); !ok {
				return nil, false
			}
		}
	}
	if !current.IsValid() {
		return nil, false
	}
	return current.Interface(), true
}

// splitSegment 将 "name[1][2]" 拆为名称与下标。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return name, nil, true
	}
	rest = "[" + rest
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, n)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func field(v reflect.Value, name string) (reflect.Value, bool) {
	v = indirect(v)
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		out := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		return out, out.IsValid()
	case reflect.Struct:
		out := v.FieldByName(name)
		if !out.IsValid() || !out.CanInterface() {
			return reflect.Value{}, false
		}
		return out, true
	}
	return reflect.Value{}, false
}

func index(v reflect.Value, i int) (reflect.Value, bool) {
	v = indirect(v)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(i), true
	}
	return reflect.Value{}, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
