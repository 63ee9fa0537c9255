package gpio

import "sync"

// Mock line for testing. Every write is recorded in order.
type Mock struct {
	Writes []Level
	Closed bool
	// FailAt makes the n'th write (1 based) return WriteErr.
	FailAt   int
	WriteErr error

	level Level
	mu    sync.Mutex
}

func (self *Mock) Write(level Level) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.FailAt > 0 && len(self.Writes)+1 == self.FailAt {
		self.FailAt = 0
		return self.WriteErr
	}
	self.Writes = append(self.Writes, level)
	self.level = level
	return nil
}

func (self *Mock) Read() (Level, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.level, nil
}

func (self *Mock) Close() error {
	self.Closed = true
	return nil
}
