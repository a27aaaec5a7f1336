// Package keylock 提供按 key 序列化的进程内互斥锁
package keylock

import "sync"

// KeyLock 针对同一 key 的调用串行执行，不同 key 互不阻塞。
// 每个 key 对应一把常驻互斥锁，进程生命周期内不回收；
// 内存占用随出现过的 key 数量线性增长，key 基数大时需要换成带淘汰的实现。
type KeyLock struct {
	locks sync.Map
}

// New 创建 KeyLock 实例
func New() *KeyLock {
	return &KeyLock{}
}

// Lock 锁定指定 key，返回解锁函数
func (l *KeyLock) Lock(key uint) (unlock func()) {
	v, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
