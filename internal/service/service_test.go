package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

var (
	admin = access.Caller{Role: "Admin", ID: 100}
	ctx   = context.Background()
)

func user(id uint) access.Caller {
	return access.Caller{Role: "User", ID: id}
}

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type fakeIndex struct {
	indexed  map[uint]transport.ProductDTO
	deleted  []uint
	results  []transport.ProductDTO
	err      error
	searched int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uint]transport.ProductDTO{}}
}

func (f *fakeIndex) IndexProduct(_ context.Context, p transport.ProductDTO) error {
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []transport.ProductDTO, error) {
	f.searched++
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.results)), f.results, nil
}

var errBroker = errors.New("broker unavailable")
