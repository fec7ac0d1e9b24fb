// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// TimerTask 是一个定时任务。Key 用于按游戏批量取消，例如一个公会的全部回合计时。
type TimerTask struct {
	Id       int64
	Key      string
	Execute  time.Time
	Interval time.Duration
	Callback func()
	index    int
}

type TimerQueue []*TimerTask

func (q TimerQueue) Len() int { return len(q) }

func (q TimerQueue) Less(i, j int) bool {
	return q[i].Execute.Before(q[j].Execute)
}

func (q TimerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *TimerQueue) Push(x interface{}) {
	task := x.(*TimerTask)
	task.index = len(*q)
	*q = append(*q, task)
}

func (q *TimerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// TimerManager 调度回合超时与多人猜中窗口
type TimerManager struct {
	queue  TimerQueue
	byId   map[int64]*TimerTask
	mutex  sync.Mutex
	nextId int64
	tick   time.Duration
	now    func() time.Time
	done   chan struct{}
	once   sync.Once
}

// NewTimerManager 创建调度器，tick 为检查精度
func NewTimerManager(tick time.Duration) *TimerManager {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	m := &TimerManager{
		queue:  make(TimerQueue, 0),
		byId:   make(map[int64]*TimerTask),
		nextId: 1,
		tick:   tick,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.process()
	return m
}

// After 在 delay 之后执行一次 fn
func (m *TimerManager) After(key string, delay time.Duration, fn func()) int64 {
	return m.AddTimer(key, delay, 0, fn)
}

// AddTimer 添加任务，interval > 0 时重复执行
func (m *TimerManager) AddTimer(key string, delay, interval time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &TimerTask{
		Id:       m.nextId,
		Key:      key,
		Execute:  m.now().Add(delay),
		Interval: interval,
		Callback: callback,
	}
	m.nextId++

	heap.Push(&m.queue, task)
	m.byId[task.Id] = task
	return task.Id
}

// Cancel 取消一个任务，已执行或不存在的任务忽略
func (m *TimerManager) Cancel(id int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.removeLocked(id)
}

// CancelKey 取消 key 下的全部任务
func (m *TimerManager) CancelKey(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, task := range m.byId {
		if task.Key == key {
			m.removeLocked(id)
		}
	}
}

func (m *TimerManager) removeLocked(id int64) {
	task, ok := m.byId[id]
	if !ok {
		return
	}
	delete(m.byId, id)
	if task.index >= 0 {
		heap.Remove(&m.queue, task.index)
	}
}

// Pending 未执行的任务数
func (m *TimerManager) Pending() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.byId)
}

// Stop 停止调度，未执行的任务被丢弃
func (m *TimerManager) Stop() {
	m.once.Do(func() { close(m.done) })
}

func (m *TimerManager) process() {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, fn := range m.due() {
				go fn()
			}
		case <-m.done:
			return
		}
	}
}

// due 取出到期任务；回调在锁外执行，可以安全地再次调用调度器
func (m *TimerManager) due() []func() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	var callbacks []func()
	for m.queue.Len() > 0 {
		task := m.queue[0]
		if task.Execute.After(now) {
			break
		}

		heap.Pop(&m.queue)
		callbacks = append(callbacks, task.Callback)

		if task.Interval > 0 {
			task.Execute = now.Add(task.Interval)
			heap.Push(&m.queue, task)
		} else {
			delete(m.byId, task.Id)
		}
	}
	return callbacks
}
