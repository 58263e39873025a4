package utils

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"
)

// ResourceMonitor 定期采样堆内存，记录运行期间的最高占用
type ResourceMonitor struct {
	interval    time.Duration
	maxMemoryMB float64
	mutex       sync.RWMutex
	stop        chan struct{}
	done        chan struct{}
}

// NewResourceMonitor 创建新的资源监控器
func NewResourceMonitor() *ResourceMonitor {
	return &ResourceMonitor{interval: time.Second}
}

// Start 启动资源监控，重复调用无效
func (rm *ResourceMonitor) Start() {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()
	if rm.stop != nil {
		return
	}
	rm.stop = make(chan struct{})
	rm.done = make(chan struct{})
	rm.sample()
	go rm.monitorLoop(rm.stop, rm.done)
}

// Stop 停止资源监控并等待采样协程退出
func (rm *ResourceMonitor) Stop() {
	rm.mutex.Lock()
	stop, done := rm.stop, rm.done
	rm.stop, rm.done = nil, nil
	rm.mutex.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (rm *ResourceMonitor) monitorLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(rm.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rm.mutex.Lock()
			rm.sample()
			rm.mutex.Unlock()
		}
	}
}

// sample 调用方需持有写锁
func (rm *ResourceMonitor) sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if currentMB := float64(m.Alloc) / 1024 / 1024; currentMB > rm.maxMemoryMB {
		rm.maxMemoryMB = currentMB
	}
}

// GetMaxMemoryUsage 获取最高内存占用（MB）
func (rm *ResourceMonitor) GetMaxMemoryUsage() float64 {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return rm.maxMemoryMB
}

// ShowMaxResourceUsage 停止监控并输出最高资源占用
func (rm *ResourceMonitor) ShowMaxResourceUsage(w io.Writer) {
	rm.Stop()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, "📊 程序运行资源统计")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "最高内存占用: %.2f MB\n", rm.GetMaxMemoryUsage())
	fmt.Fprintln(w, "==================================================")
}
