package errs

import (
	"errors"
	"fmt"
)

// ErrMalformed 输入数据损坏：截断、长度字段错误、非法UTF-8、未知类型字节、调色板索引越界
var ErrMalformed = errors.New("malformed data")

// ErrUnsupported 数据格式可识别但未实现（例如未支持的子区块版本）
var ErrUnsupported = errors.New("unsupported format")

// Error 描述一次解码失败，Kind 为 ErrMalformed 或 ErrUnsupported
type Error struct {
	Kind     error
	Offset   int
	What     string
	Expected any
	Found    any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s at offset %d", e.Kind, e.What, e.Offset)
	if e.Expected != nil {
		msg += fmt.Sprintf(" (expected %v, found %v)", e.Expected, e.Found)
	} else if e.Found != nil {
		msg += fmt.Sprintf(" (found %v)", e.Found)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Malformed 构造一个 ErrMalformed 错误
func Malformed(offset int, what string, expected, found any) error {
	return &Error{Kind: ErrMalformed, Offset: offset, What: what, Expected: expected, Found: found}
}

// Unsupported 构造一个 ErrUnsupported 错误
func Unsupported(offset int, what string, found any) error {
	return &Error{Kind: ErrUnsupported, Offset: offset, What: what, Found: found}
}

// Offset 取出错误链中第一个 *Error 的偏移量
func Offset(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset, true
	}
	return 0, false
}

// Shift 将错误中的偏移量加上 base，用于在子切片上解码后换算为整体偏移
func Shift(err error, base int) error {
	var e *Error
	if base != 0 && errors.As(err, &e) {
		shifted := *e
		shifted.Offset += base
		return &shifted
	}
	return err
}
