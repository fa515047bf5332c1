package layout

import (
	"errors"
	"strings"
)

// ErrMaxIterations is returned (wrapped with the limit) when a fit search
// exceeds FitOptions.MaxIterations.
var ErrMaxIterations = errors.New("超出最大迭代次数")

// ConfigError 汇总拟合配置中的全部错误，而不是在第一个错误处停止。
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return "无效的拟合配置: " + strings.Join(e.Violations, ", ")
}
