package repository

import (
	"path/filepath"
	"sync"
)

// DirLocker 按数据目录串行化写操作。原始实现对同一目录的并发
// 记录生产会整表互相覆盖（丢失更新），这里以目录为粒度加锁消除该竞态。
// 仅覆盖本进程内的并发；跨进程访问同一目录仍无保护。
type DirLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDirLocker() *DirLocker {
	return &DirLocker{locks: make(map[string]*sync.Mutex)}
}

// Acquire 锁定目录并返回解锁函数。目录路径先归一化，
// 使 "./data" 与 "data" 命中同一把锁。
func (l *DirLocker) Acquire(dir string) func() {
	key := dir
	if abs, err := filepath.Abs(dir); err == nil {
		key = abs
	}

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
