package routine

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// maxStackDepth 是捕获 panic 时记录的最大调用栈深度。
const maxStackDepth = 32

// Recover 在 defer 中调用，恢复当前 goroutine 的 panic。
// 如果发生了 panic，依次调用 cleanup 函数，panic 值作为参数传递。
func Recover(cleanups ...func(r interface{})) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup(r)
		}
	}
}

// Recovered 保存一次 panic 的值和发生时的调用栈。
type Recovered struct {
	Value   interface{}
	Callers []uintptr
}

// NewRecovered 捕获当前调用栈并包装 panic 值。skip 的含义与 runtime.Callers
// 相同：0 表示从 NewRecovered 自身开始记录，1 表示从调用者开始。
// 通常在 recover 所在的 defer 函数中以 skip=1 调用。
func NewRecovered(skip int, value any) *Recovered {
	var callers [maxStackDepth]uintptr
	n := runtime.Callers(skip+1, callers[:])
	return &Recovered{
		Value:   value,
		Callers: callers[:n],
	}
}

// AsError 把 Recovered 转换为 error。对 nil 接收者返回 nil，
// 方便 "err = routine.NewRecovered(1, r).AsError()" 式的直接赋值。
func (p *Recovered) AsError() error {
	if p == nil {
		return nil
	}
	return &RecoveredError{p}
}

// RecoveredError 是携带调用栈的 panic 错误。调用方可以用 errors.As
// 识别由 panic 转换而来的错误，并通过 StackTrace 获取捕获时的堆栈。
type RecoveredError struct {
	*Recovered
}

func (e *RecoveredError) Error() string {
	return fmt.Sprintf("panic: %v\nstacktrace:%+v", e.Value, e.StackTrace())
}

// StackTrace 以 github.com/pkg/errors 的帧格式返回捕获的调用栈，
// 使 "%+v" 格式化与携带堆栈的 errors 保持一致。
func (e *RecoveredError) StackTrace() errors.StackTrace {
	if e == nil {
		return nil
	}
	frames := make([]errors.Frame, len(e.Callers))
	for i, pc := range e.Callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}
