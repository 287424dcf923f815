package weather

import (
	"log"
	"sync"
	"time"
)

// Service is the public entry point for weather requests. It answers fresh
// cache hits immediately and delegates everything else to the fetch worker,
// so callers never block on network I/O at submission time.
type Service struct {
	cache  Store
	worker *Worker

	mu     sync.Mutex
	hits   int
	misses int
}

// NewService wires the gateway against the cache and a started worker.
func NewService(store Store, worker *Worker) *Service {
	return &Service{
		cache:  store,
		worker: worker,
	}
}

// RequestWeather resolves current weather for a location. The returned
// channel delivers exactly one value: the report, or nil when the location is
// unknown to both the remote source and the static catalog. A fresh cache
// entry resolves immediately without touching the worker; anything else
// enqueues an independent fetch. Concurrent requests for the same location
// are deliberately not coalesced; each overwrites the cache on completion.
func (s *Service) RequestWeather(location string) <-chan *Report {
	reply := make(chan *Report, 1)

	if entry, ok := s.cache.Get(location); ok && s.cache.IsFresh(entry, time.Now()) {
		s.count(true)
		reply <- &entry
		return reply
	}
	s.count(false)

	id := newRequestID()
	log.Printf("service: enqueueing fetch request=%s location=%q", id, location)
	s.worker.enqueue(fetchRequest{
		id:       id,
		location: location,
		reply:    reply,
	})
	return reply
}

// Stats returns cache hit/miss counters since startup.
func (s *Service) Stats() (hits, misses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

func (s *Service) count(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}
