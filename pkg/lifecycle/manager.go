package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager 协调一组后台服务的生命周期。
// 它由停机协调器创建和持有，向每个后台服务分发一个Handle。
type Manager struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	services map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager 创建一个新的生命周期管理器。
func NewManager() *Manager {
	m := &Manager{
		services: make(map[string]bool),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// NewServiceHandle 为一个后台服务注册并创建生命周期句柄。
// 同名服务不允许重复注册。
func (m *Manager) NewServiceHandle(name string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.services[name] {
		return nil, fmt.Errorf("生命周期管理器: 服务 '%s' 已被注册", name)
	}
	m.services[name] = true
	m.wg.Add(1)

	return &Handle{
		ctx: m.ctx,
		Close: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, exists := m.services[name]; !exists {
				return
			}
			delete(m.services, name)
			m.wg.Done()
		},
	}, nil
}

// Shutdown 向所有已注册的服务广播停机信号。
func (m *Manager) Shutdown() {
	m.cancel()
}

// WaitWithTimeout 等待所有已注册的服务退出，超时后返回仍未退出的服务名。
func (m *Manager) WaitWithTimeout(timeout time.Duration) []string {
	doneChan := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(doneChan)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-doneChan:
		return nil
	case <-timer.C:
		m.mu.Lock()
		defer m.mu.Unlock()
		remaining := make([]string, 0, len(m.services))
		for name := range m.services {
			remaining = append(remaining, name)
		}
		return remaining
	}
}
