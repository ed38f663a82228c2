package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadValue 解析数值表达式：
// 空字符串保持 current 不变；"+d" 与 "-d" 为相对 current 的增减；其余为绝对值。
func ReadValue(token string, current float64) (float64, error) {
	if token == "" {
		return current, nil
	}
	switch token[0] {
	case '+':
		d, err := parseNumber(token[1:])
		if err != nil {
			return current, err
		}
		return current + d, nil
	case '-':
		d, err := parseNumber(token[1:])
		if err != nil {
			return current, err
		}
		return current - d, nil
	default:
		return parseNumber(token)
	}
}

// ReadAbsolute 解析不支持相对语法的数值（spacing、size）。
func ReadAbsolute(token string) (float64, error) {
	return parseNumber(token)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return f, nil
}
