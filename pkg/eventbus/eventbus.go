// Package eventbus 进程内的异步事件总线
//
// 领域事件在事务提交后发布，由固定数量的工作协程分发给订阅者。
// Publish 从不阻塞调用方：队列满或总线已停止时丢弃事件并记录日志。
package eventbus

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"twogether/pkg/logger"
	"twogether/pkg/metrics"
)

// Event 领域事件
type Event interface {
	Topic() string
}

// Handler 事件处理函数
type Handler func(ctx context.Context, event Event) error

// Publisher 发布事件
type Publisher interface {
	Publish(event Event)
}

// Config 总线配置
type Config struct {
	WorkerCount     int           // 并发工作协程数量
	BufferSize      int           // 队列长度
	HandlerTimeout  time.Duration // 单个处理函数超时
	ShutdownTimeout time.Duration // 关闭时等待排空的时间
}

// Bus 事件总线
type Bus struct {
	config   Config
	queue    chan Event
	handlers map[string][]Handler
	mu       sync.RWMutex
	stopChan chan struct{}
	stopped  bool
	stopOnce sync.Once
	wg       sync.WaitGroup
}

var _ Publisher = (*Bus)(nil)

// New 创建事件总线，需调用 Start 启动工作协程
func New(config Config) *Bus {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4 // 默认工作协程数量
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1024 // 默认队列长度
	}
	if config.HandlerTimeout <= 0 {
		config.HandlerTimeout = 10 * time.Second
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 30 * time.Second
	}

	return &Bus{
		config:   config,
		queue:    make(chan Event, config.BufferSize),
		handlers: make(map[string][]Handler),
		stopChan: make(chan struct{}),
	}
}

// Subscribe 订阅主题
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Start 启动工作协程组
func (b *Bus) Start() {
	for i := 0; i < b.config.WorkerCount; i++ {
		b.wg.Add(1)
		go b.startWorker(i)
	}
}

// Publish 投递事件，不等待处理结果
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		b.drop(event, "bus stopped")
		return
	}

	select {
	case b.queue <- event:
		metrics.RecordEventPublished(event.Topic())
		metrics.SetEventQueueDepth(len(b.queue))
	default:
		b.drop(event, "queue full")
	}
}

func (b *Bus) drop(event Event, reason string) {
	metrics.RecordEventDropped(event.Topic())
	logger.Warn("EventBus",
		zap.String("topic", event.Topic()),
		zap.String("reason", reason),
		zap.Any("event", event),
	)
}

// startWorker 启动单个工作协程
func (b *Bus) startWorker(id int) {
	defer b.wg.Done()

	logger.DebugString("EventBus", "Start", fmt.Sprintf("worker %d started", id))

	for {
		select {
		case event := <-b.queue:
			b.dispatch(event)
		case <-b.stopChan:
			// 排空剩余事件后退出
			for {
				select {
				case event := <-b.queue:
					b.dispatch(event)
				default:
					logger.DebugString("EventBus", "Stop", fmt.Sprintf("worker %d stopped", id))
					return
				}
			}
		}
	}
}

func (b *Bus) dispatch(event Event) {
	metrics.SetEventQueueDepth(len(b.queue))

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Topic()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.handle(handler, event)
	}
}

// handle 执行单个处理函数，超时和 panic 都只影响当前处理函数
func (b *Bus) handle(handler Handler, event Event) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), b.config.HandlerTimeout)
	defer cancel()

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			logger.Error("EventBus",
				zap.String("topic", event.Topic()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
		metrics.RecordEventHandled(event.Topic(), err, time.Since(start))
	}()

	if err = handler(ctx, event); err != nil {
		logger.Error("EventBus",
			zap.String("topic", event.Topic()),
			zap.Any("event", event),
			zap.Error(err),
		)
	}
}

// Stop 停止接收新事件，等待已入队事件处理完
func (b *Bus) Stop() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.stopped = true
		b.mu.Unlock()
		close(b.stopChan)
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.InfoString("EventBus", "Stop", "all workers stopped gracefully")
	case <-time.After(b.config.ShutdownTimeout):
		logger.WarnString("EventBus", "Stop", "worker shutdown timed out")
	}
}

// SyncPublisher 同步执行订阅者，测试中使用
type SyncPublisher struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	Events   []Event
}

// NewSyncPublisher 创建同步发布器
func NewSyncPublisher() *SyncPublisher {
	return &SyncPublisher{handlers: make(map[string][]Handler)}
}

// Subscribe 订阅主题
func (p *SyncPublisher) Subscribe(topic string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[topic] = append(p.handlers[topic], handler)
}

// Publish 记录事件并立即执行订阅者
func (p *SyncPublisher) Publish(event Event) {
	p.mu.Lock()
	p.Events = append(p.Events, event)
	handlers := append([]Handler(nil), p.handlers[event.Topic()]...)
	p.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(context.Background(), event); err != nil {
			logger.Error("EventBus", zap.String("topic", event.Topic()), zap.Error(err))
		}
	}
}

// Topics 已发布事件的主题，按发布顺序
func (p *SyncPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		topics = append(topics, e.Topic())
	}
	return topics
}
