package layout

import (
	"encoding/json"
	"fmt"
	"math"
)

// FitType 控制拟合方向。
type FitType int

const (
	FitGrow   FitType = iota // 可放大也可缩小
	FitShrink                // 只缩小；在 1 倍下已放得下时直接返回
)

func (t FitType) String() string {
	if t == FitShrink {
		return "shrink"
	}
	return "fit"
}

// ParseFitType accepts "fit" (or "") and "shrink".
func ParseFitType(s string) (FitType, error) {
	switch s {
	case "", "fit":
		return FitGrow, nil
	case "shrink":
		return FitShrink, nil
	}
	return FitGrow, fmt.Errorf("未知的拟合类型 %q", s)
}

func (t FitType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// Strategy records how a fit search ended.
type Strategy string

const (
	StrategyWidestWord Strategy = "widest word"
	StrategyHeight     Strategy = "height"
	StrategyShrink     Strategy = "shrink"
	StrategyNoCloseFit Strategy = "no close fit"
)

// Phase records which part of the search produced the result.
type Phase string

const (
	PhaseInitial    Phase = "initial"
	PhaseEstimate   Phase = "estimate"
	PhaseUpperBound Phase = "upper bound search"
	PhaseLowerBound Phase = "lower bound search"
	PhaseMidScale   Phase = "mid scale"
	PhaseBinary     Phase = "binary search"
	PhaseDeltaCheck Phase = "lower/upper delta check"
)

// FitResult 是拟合搜索的最终状态，字段用于调试与遥测。
type FitResult struct {
	Wrapped     WrappedBlock `json:"wrapped"`
	Bounds      Size         `json:"bounds"`
	Strategy    Strategy     `json:"strategy"`
	Scale       float64      `json:"scale"`
	Iterations  int          `json:"iterations"`
	FoundDuring Phase        `json:"foundDuring"`
}

// FitOptions configures a Fitter. Start from DefaultFitOptions and
// override fields as needed.
type FitOptions struct {
	// Tolerance is the absolute distance below a bound that counts as a
	// close fit. Must be > 0.
	Tolerance float64
	// ScaleStep multiplies/divides the scale while bracketing. Must be > 1.
	ScaleStep float64
	// MaxIterations caps the number of attempts; exceeding it is an error.
	MaxIterations int
	// MinBoundsDelta is the bracket width below which the search gives up
	// and returns an under-sized result.
	MinBoundsDelta float64
	Type           FitType
	// Wrapper soft wraps each scaled attempt; nil means SoftWrap.
	Wrapper SoftWrapper
	// CropToMetrics measures height from the first line's ink ascent
	// instead of its nominal line height.
	CropToMetrics bool
}

// DefaultFitOptions returns the documented defaults.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Tolerance:      1,
		ScaleStep:      2,
		MaxIterations:  100,
		MinBoundsDelta: 1e-6,
		Type:           FitGrow,
		Wrapper:        SoftWrap,
	}
}

// Fitter searches the scale at which a hard wrapped block, soft wrapped at
// the bounds width, best fills the bounds. A Fitter holds no mutable state.
type Fitter struct {
	bounds Size
	opts   FitOptions
	closeW float64
	closeH float64
}

// NewFitter validates the options and returns a Fitter for bounds.
// A zero MaxIterations and non-positive bounds are reported here as a
// *ConfigError together with the other violations, not as ErrMaxIterations
// from Fit.
func NewFitter(bounds Size, opts FitOptions) (*Fitter, error) {
	var violations []string
	if !(opts.Tolerance > 0) {
		violations = append(violations, fmt.Sprintf("tolerance 必须 > 0，实际为 %g", opts.Tolerance))
	}
	if !(opts.ScaleStep > 1) {
		violations = append(violations, fmt.Sprintf("scaleStep 必须 > 1，实际为 %g", opts.ScaleStep))
	}
	if opts.MaxIterations <= 0 {
		violations = append(violations, fmt.Sprintf("maxIterations 必须 > 0，实际为 %d", opts.MaxIterations))
	}
	if !(bounds.Width > 0) || !(bounds.Height > 0) {
		violations = append(violations, fmt.Sprintf("bounds 必须为正，实际为 %gx%g", bounds.Width, bounds.Height))
	}
	if len(violations) > 0 {
		return nil, &ConfigError{Violations: violations}
	}
	if opts.Wrapper == nil {
		opts.Wrapper = SoftWrap
	}
	return &Fitter{
		bounds: bounds,
		opts:   opts,
		closeW: bounds.Width - opts.Tolerance,
		closeH: bounds.Height - opts.Tolerance,
	}, nil
}

// Bounds returns the target size.
func (f *Fitter) Bounds() Size { return f.bounds }

type fitness int

const (
	fitOver fitness = iota
	fitUnder
	fitClose
)

func (f fitness) String() string {
	switch f {
	case fitOver:
		return "over"
	case fitUnder:
		return "under"
	default:
		return "close"
	}
}

// attempt 是一次尝试的结果：fitness 为 fitClose 时 result 有效。
type attempt struct {
	fitness fitness
	result  FitResult
}

// search 保存一次 Fit 调用的状态，不在多次调用之间共享。
type search struct {
	f          *Fitter
	block      Block
	iterations int
	wrapped    WrappedBlock
}

func (s *search) result(scale float64, strategy Strategy, during Phase) FitResult {
	return FitResult{
		Wrapped:     s.wrapped,
		Bounds:      s.f.bounds,
		Strategy:    strategy,
		Scale:       scale,
		Iterations:  s.iterations,
		FoundDuring: during,
	}
}

// try 缩放并软换行一次，然后判断结果是过大、过小还是足够接近。
func (s *search) try(scale float64, during Phase) (attempt, error) {
	s.iterations++
	if s.iterations > s.f.opts.MaxIterations {
		return attempt{}, fmt.Errorf("%w (%d)", ErrMaxIterations, s.f.opts.MaxIterations)
	}
	bounds := s.f.bounds
	s.wrapped = s.f.opts.Wrapper(bounds.Width, s.block.Scale(scale))
	height := s.f.effectiveHeight(s.wrapped)
	longest := LongestWord(s.wrapped.Block)

	var a attempt
	switch {
	case longest.Width > bounds.Width:
		a.fitness = fitOver
	case longest.Width >= s.f.closeW && height <= bounds.Height:
		// 最长的 word 已缩放到贴合宽度且高度放得下，这是能做到的最好结果
		a = attempt{fitness: fitClose, result: s.result(scale, StrategyWidestWord, during)}
	case height > bounds.Height:
		a.fitness = fitOver
	case height < s.f.closeH:
		a.fitness = fitUnder
	default:
		a = attempt{fitness: fitClose, result: s.result(scale, StrategyHeight, during)}
	}
	tracer().Debugf("fit attempt %d (%s): scale=%g size=%gx%g height=%g longest=%g -> %s",
		s.iterations, during, scale, s.wrapped.Width, s.wrapped.Height, height, longest.Width, a.fitness)
	return a, nil
}

func (f *Fitter) effectiveHeight(wrapped WrappedBlock) float64 {
	if !f.opts.CropToMetrics || len(wrapped.Lines) == 0 {
		return wrapped.Height
	}
	first := wrapped.Lines[0]
	ascent, ok := OpticalAscent(first)
	if !ok {
		return wrapped.Height
	}
	return wrapped.Height - (first.Height - ascent)
}

// Fit 调整缩放比例并在每个比例下重新换行，直到高度足够接近边界，
// 或者最宽的不可拆分 word 无法再放大为止。
// 配置错误在 NewFitter 中报告；超出迭代次数时返回包装了 ErrMaxIterations 的错误。
func (f *Fitter) Fit(block Block) (FitResult, error) {
	s := &search{f: f, block: block}

	scale := 1.0
	a, err := s.try(scale, PhaseInitial)
	if err != nil {
		return FitResult{}, err
	}
	if f.opts.Type == FitShrink && a.fitness == fitUnder {
		return s.result(scale, StrategyShrink, PhaseInitial), nil
	}
	if a.fitness == fitClose {
		return a.result, nil
	}

	area := s.wrapped.Size().Area()
	if !(area > 0) || !(s.wrapped.Width*f.effectiveHeight(s.wrapped) > 0) {
		tracer().Infof("block has no area, no scale can fit it")
		return s.result(scale, StrategyNoCloseFit, PhaseEstimate), nil
	}
	scale = math.Sqrt(f.bounds.Area() / area)
	if a, err = s.try(scale, PhaseEstimate); err != nil || a.fitness == fitClose {
		return a.result, err
	}

	// 没有可靠的办法预估上下界，先按 ScaleStep 倍数寻找包住目标的区间
	var lower, upper float64
	if a.fitness == fitUnder {
		lower = scale
		for a.fitness == fitUnder {
			scale *= f.opts.ScaleStep
			if a, err = s.try(scale, PhaseUpperBound); err != nil || a.fitness == fitClose {
				return a.result, err
			}
		}
		upper = scale
	} else {
		upper = scale
		for a.fitness == fitOver {
			scale /= f.opts.ScaleStep
			if a, err = s.try(scale, PhaseLowerBound); err != nil || a.fitness == fitClose {
				return a.result, err
			}
		}
		lower = scale
	}

	mid := (lower + upper) / 2
	if a, err = s.try(mid, PhaseMidScale); err != nil || a.fitness == fitClose {
		return a.result, err
	}

	// 二分查找：要么找到接近的结果，要么区间收缩到 MinBoundsDelta 以下，
	// 要么由 MaxIterations 终止
	for {
		switch a.fitness {
		case fitUnder:
			lower = mid
			if upper-lower < f.opts.MinBoundsDelta {
				return s.result(mid, StrategyNoCloseFit, PhaseDeltaCheck), nil
			}
		case fitOver:
			upper = mid
		}
		mid = (lower + upper) / 2
		if a, err = s.try(mid, PhaseBinary); err != nil || a.fitness == fitClose {
			return a.result, err
		}
	}
}
