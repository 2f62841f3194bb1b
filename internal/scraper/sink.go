package scraper

import "sync"

// Sink is a thread-safe, ordered accumulation of scrape records. A single
// mutex guards every operation; serialization of a snapshot happens outside
// the lock so exports never block a running crawl for long.
type Sink struct {
	mu      sync.Mutex
	records []Record
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append adds a record to the end of the sequence.
func (s *Sink) Append(rec Record) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

// Clear discards all records. Called at crawl start.
func (s *Sink) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}

// Snapshot returns a shallow copy of the current sequence. Safe to call at
// any time, including concurrently with appends.
func (s *Sink) Snapshot() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Len reports the number of accumulated records.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
