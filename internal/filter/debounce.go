package filter

import (
	"sync"
	"time"
)

// DefaultDebounce 搜索输入防抖时长
const DefaultDebounce = 300 * time.Millisecond

// Timer 可取消的定时任务
type Timer interface {
	Stop() bool
}

// AfterFunc 调度函数，默认 time.AfterFunc；测试中替换为虚拟时钟
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer 静默 delay 之后才发出最后一个值，并与上一次发出的值去重
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	emit    func(string)
	timer   Timer
	gen     uint64
	last    string
	emitted bool
	closed  bool
}

// NewDebouncer 创建防抖器；after 为 nil 时使用 time.AfterFunc
func NewDebouncer(delay time.Duration, after AfterFunc, emit func(string)) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, after: after, emit: emit}
}

// Push 记录新值并重置等待
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen, v) })
}

// fire 已被新输入取代（generation 不一致）的定时器直接丢弃
func (d *Debouncer) fire(gen uint64, v string) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	if d.emitted && d.last == v {
		d.mu.Unlock()
		return
	}
	d.last = v
	d.emitted = true
	d.mu.Unlock()

	d.emit(v)
}

// Sync 外部已直接采用 v（不经防抖）时，把 v 记为上一次发出的值
func (d *Debouncer) Sync(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = v
	d.emitted = true
}

// Pending 是否有等待中的值
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Close 取消等待中的定时器，之后的 Push 被忽略
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
