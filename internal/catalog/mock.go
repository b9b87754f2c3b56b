package catalog

import (
	"context"
	"fmt"
	"sync"
)

// Mock is an in-memory Client used in tests.
type Mock struct {
	mu       sync.Mutex
	Releases map[string]*Release
	TracksM  map[string]*Track
	Streams  map[string]*StreamInfo
	// StreamErr, when set, is returned by every GetStreamInfo call.
	StreamErr error
	// StreamCalls counts GetStreamInfo invocations.
	StreamCalls int
}

// NewMock creates an empty mock catalog.
func NewMock() *Mock {
	return &Mock{
		Releases: make(map[string]*Release),
		TracksM:  make(map[string]*Track),
		Streams:  make(map[string]*StreamInfo),
	}
}

func (m *Mock) GetRelease(ctx context.Context, id string) (*Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rel, ok := m.Releases[id]
	if !ok {
		return nil, fmt.Errorf("release %s not found", id)
	}
	return rel, nil
}

func (m *Mock) GetTrack(ctx context.Context, id string) (*Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trk, ok := m.TracksM[id]
	if !ok {
		return nil, fmt.Errorf("track %s not found", id)
	}
	return trk, nil
}

func (m *Mock) GetStreamInfo(ctx context.Context, trackID string, quality int) (*StreamInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreamCalls++
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}
	info, ok := m.Streams[trackID]
	if !ok {
		return nil, fmt.Errorf("no stream for track %s", trackID)
	}
	return info, nil
}
