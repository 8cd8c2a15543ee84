package service

import "sync"

type pooledExporter struct {
	svc  *ExportService
	refs int
}

// exporterPool hands out one ExportService per key while it is in use, so
// concurrent requests for the same card share the in-flight guard. The entry
// is dropped when its last holder releases it.
type exporterPool[K comparable] struct {
	mu      sync.Mutex
	newFunc func() *ExportService
	entries map[K]*pooledExporter
}

func newExporterPool[K comparable](newFunc func() *ExportService) *exporterPool[K] {
	return &exporterPool[K]{
		newFunc: newFunc,
		entries: make(map[K]*pooledExporter),
	}
}

// acquire returns the exporter for key and the func that releases it.
func (p *exporterPool[K]) acquire(key K) (*ExportService, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[key]
	if !ok {
		e = &pooledExporter{svc: p.newFunc()}
		p.entries[key] = e
	}
	e.refs++

	var once sync.Once
	return e.svc, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			e.refs--
			if e.refs == 0 && p.entries[key] == e {
				delete(p.entries, key)
			}
		})
	}
}

func (p *exporterPool[K]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
