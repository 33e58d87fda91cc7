// Package routine 提供安全的 goroutine 执行和 panic 恢复工具。
//
// 主要功能：
//   - RunSafe/GoSafe: 自动捕获 panic 的同步/异步函数执行
//   - RunWithTimeout: 带超时控制的函数执行
//   - Recover/NewRecovered: panic 恢复和堆栈跟踪
//
// future 包在异步任务和链式回调发生 panic 时，使用本包的 RecoveredError
// 把 panic 转换为携带堆栈的 error，调用方用 errors.As 即可识别。
package routine
