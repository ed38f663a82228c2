package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/pagedraw/script"
)

var (
	// ErrInputNotFound 表示脚本文件不存在或不可读，在任何绘制之前终止。
	ErrInputNotFound = errors.New("无法读取脚本文件")
	// ErrMalformedNumber 表示数值表达式不是合法的浮点数，属于致命错误。
	ErrMalformedNumber = errors.New("数值格式错误")
	// ErrMissingArgument 表示指令缺少必需的参数，属于致命错误。
	ErrMissingArgument = errors.New("缺少指令参数")
	// ErrUnrecognizedKey 表示无法识别的指令；解释器只记录日志并跳过该行。
	ErrUnrecognizedKey = errors.New("无法识别的指令")
)

// LineError 记录出错的脚本行及其原始内容。
type LineError struct {
	Line int
	Raw  string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("第 %d 行 %q: %v", e.Line, e.Raw, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func lineError(line *script.Line, err error) error {
	return &LineError{Line: line.Number(), Raw: line.Raw, Err: err}
}
