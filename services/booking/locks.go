package booking

import "sync"

// serviceLocks hands out one mutex per service id, serializing booking writes
// for a service while leaving other services fully concurrent.
type serviceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newServiceLocks() *serviceLocks {
	return &serviceLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *serviceLocks) get(serviceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[serviceID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[serviceID] = lock
	}
	return lock
}
