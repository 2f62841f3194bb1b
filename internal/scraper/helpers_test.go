package scraper

import (
	"context"
	"fmt"
	"sync"
)

// testJournal records every journal line for assertions.
type testJournal struct {
	mu    sync.Mutex
	lines []string
}

func (j *testJournal) Infof(format string, args ...any)  { j.append("INFO", format, args...) }
func (j *testJournal) Warnf(format string, args ...any)  { j.append("WARN", format, args...) }
func (j *testJournal) Errorf(format string, args ...any) { j.append("ERROR", format, args...) }

func (j *testJournal) append(level, format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, fmt.Sprintf("[%s] ", level)+fmt.Sprintf(format, args...))
}

func (j *testJournal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.lines...)
}

// stubFetcher serves canned documents keyed by URL and counts fetches.
type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string][]byte
	errs  map[string]error
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		docs: make(map[string][]byte),
		errs: make(map[string]error),
	}
}

func (f *stubFetcher) add(url, body string) {
	f.docs[url] = []byte(body)
}

func (f *stubFetcher) fail(url string, err error) {
	f.errs[url] = err
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	f.mu.Unlock()
	if err, ok := f.errs[rawURL]; ok {
		return nil, err
	}
	body, ok := f.docs[rawURL]
	if !ok {
		return nil, fmt.Errorf("no document for %s", rawURL)
	}
	return body, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
