package layout

import (
	"encoding/json"
	"io"
	"os"
)

// EncodeDebug 将布局结果（含每个文本框的拟合诊断）以缩进 JSON 写入 w。
func EncodeDebug(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteDebugJSON 将布局结果写入 path，res 为 nil 时不做任何事。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebug(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
