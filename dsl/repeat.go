package dsl

import (
	"fmt"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/matchers"
)

// repeat is a validated array-repetition request: the rule recorded on the
// container and how many copies of the example element to emit.
type repeat struct {
	rule  matchers.Rule
	n     int
	fault *fault
}

func boundFault(detail string, params map[string]any) *fault {
	return &fault{code: pactdsl.CodeInvalidSizeBound, detail: detail, params: params}
}

func count(n []int, def int) int {
	if len(n) > 0 {
		return n[0]
	}
	return def
}

func checkCount(n int) *fault {
	if n < 0 {
		return boundFault(fmt.Sprintf("numberExamples %d is negative", n), map[string]any{"numberExamples": n})
	}
	return nil
}

// eachLike defaults to one example.
func eachLike(n []int) repeat {
	c := count(n, 1)
	return repeat{rule: matchers.MinTypeRule{Min: 0}, n: c, fault: checkCount(c)}
}

// minLike defaults numberExamples to size.
func minLike(size int, n []int) repeat {
	c := count(n, size)
	r := repeat{rule: matchers.MinTypeRule{Min: size}, n: c, fault: checkCount(c)}
	if r.fault == nil && c < size {
		r.fault = boundFault(fmt.Sprintf("numberExamples %d is less than minSize %d", c, size),
			map[string]any{"numberExamples": c, "min": size})
	}
	return r
}

// maxLike defaults to one example.
func maxLike(size int, n []int) repeat {
	c := count(n, 1)
	r := repeat{rule: matchers.MaxTypeRule{Max: size}, n: c, fault: checkCount(c)}
	if r.fault == nil && c > size {
		r.fault = boundFault(fmt.Sprintf("numberExamples %d is more than maxSize %d", c, size),
			map[string]any{"numberExamples": c, "max": size})
	}
	return r
}

// minMaxLike defaults numberExamples to minSize.
func minMaxLike(minSize, maxSize int, n []int) repeat {
	c := count(n, minSize)
	r := repeat{rule: matchers.MinMaxTypeRule{Min: minSize, Max: maxSize}, n: c, fault: checkCount(c)}
	switch {
	case r.fault != nil:
	case minSize > maxSize:
		r.fault = boundFault(fmt.Sprintf("minSize %d is more than maxSize %d", minSize, maxSize),
			map[string]any{"min": minSize, "max": maxSize})
	case c < minSize:
		r.fault = boundFault(fmt.Sprintf("numberExamples %d is less than minSize %d", c, minSize),
			map[string]any{"numberExamples": c, "min": minSize})
	case c > maxSize:
		r.fault = boundFault(fmt.Sprintf("numberExamples %d is more than maxSize %d", c, maxSize),
			map[string]any{"numberExamples": c, "max": maxSize})
	}
	return r
}

// forValue rejects zero examples: a value combinator has no element template
// to fall back on.
func (r repeat) forValue() repeat {
	if r.fault == nil && r.n == 0 {
		r.fault = boundFault("zero examples is unsafe; provide at least one example", map[string]any{"numberExamples": 0})
	}
	return r
}

// unordered builds the ignore-order rule; negative bounds are unset.
func unordered(minSize, maxSize int) repeat {
	r := repeat{rule: matchers.IgnoreOrderRule{Min: minSize, Max: maxSize}, n: 1}
	if minSize >= 0 && maxSize >= 0 && minSize > maxSize {
		r.fault = boundFault(fmt.Sprintf("minSize %d is more than maxSize %d", minSize, maxSize),
			map[string]any{"min": minSize, "max": maxSize})
	}
	return r
}

func unorderedMin(minSize int) repeat {
	if minSize < 0 {
		return repeat{fault: boundFault(fmt.Sprintf("minSize %d is negative", minSize), map[string]any{"min": minSize})}
	}
	return unordered(minSize, -1)
}

func unorderedMax(maxSize int) repeat {
	if maxSize < 0 {
		return repeat{fault: boundFault(fmt.Sprintf("maxSize %d is negative", maxSize), map[string]any{"max": maxSize})}
	}
	return unordered(-1, maxSize)
}

func unorderedMinMax(minSize, maxSize int) repeat {
	if minSize < 0 || maxSize < 0 {
		return repeat{fault: boundFault(fmt.Sprintf("bounds %d..%d are negative", minSize, maxSize), map[string]any{"min": minSize, "max": maxSize})}
	}
	return unordered(minSize, maxSize)
}
