// Package client holds the building list view state and notifies observers
// whenever it changes.
//
// Every operation completes synchronously: by the time a Client method
// returns, the state has been replaced and every observer has run.
package client

import (
	"context"
	"sync"

	"github.com/louisbranch/skyline/internal/platform/logging"
	"github.com/louisbranch/skyline/internal/services/buildings/codec"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"go.uber.org/zap"
)

// Source is the server side a Client talks to. Both the in-process server
// facade and the remote gRPC source satisfy it. Implementations invoke
// onComplete exactly once, before returning.
type Source interface {
	FetchBuildings(ctx context.Context, onComplete func(records []codec.Record, err error))
	FilterBuildings(ctx context.Context, query string, onComplete func(buildings []domain.Building, err error))
}

// Observer receives every new view state.
type Observer func(state domain.ViewState)

// Client owns one ViewState and its subscribers. It is safe for concurrent
// use; each state change and its notification happen in publish order.
type Client struct {
	source       Source
	deserializer codec.Deserializer
	logger       *zap.Logger

	mu            sync.Mutex
	state         domain.ViewState
	subscriptions []Observer
}

// Option configures a Client.
type Option func(*Client)

// WithDeserializer replaces the default name deserializer.
func WithDeserializer(deserializer codec.Deserializer) Option {
	return func(c *Client) {
		if deserializer != nil {
			c.deserializer = deserializer
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// WithInitialState seeds the view state without notifying anyone.
func WithInitialState(state domain.ViewState) Option {
	return func(c *Client) {
		c.state = state.Clone()
	}
}

// New creates a client with an empty view state.
func New(source Source, opts ...Option) *Client {
	c := &Client{
		source:       source,
		deserializer: codec.NameDeserializer,
		logger:       zap.NewNop(),
		state:        domain.ViewState{Buildings: []domain.Building{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current view state.
func (c *Client) State() domain.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// AddSubscription appends observer to the subscriber list. Observers are
// called in the order they were added.
func (c *Client) AddSubscription(observer Observer) {
	if observer == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions = append(c.subscriptions, observer)
}

// SetState replaces the view state and notifies every observer with it before
// returning.
func (c *Client) SetState(state domain.ViewState) {
	state = state.Clone()
	c.publish(func(domain.ViewState) domain.ViewState { return state })
}

// publish derives the next state from the current one under the lock, then
// notifies observers outside it so they may call back into the client.
func (c *Client) publish(next func(current domain.ViewState) domain.ViewState) {
	c.mu.Lock()
	state := next(c.state)
	c.state = state
	observers := make([]Observer, len(c.subscriptions))
	copy(observers, c.subscriptions)
	c.mu.Unlock()

	for _, observer := range observers {
		observer(state.Clone())
	}
}

// ShowHomeScreen fetches every building and shows them. Records that fail to
// deserialize are left out. On error the current state is kept and observers
// are not notified.
func (c *Client) ShowHomeScreen(ctx context.Context) error {
	if c.source == nil {
		return errSourceMissing
	}
	var fetchErr error
	c.source.FetchBuildings(ctx, func(records []codec.Record, err error) {
		if err != nil {
			fetchErr = err
			return
		}
		buildings := codec.DeserializeAll(c.deserializer, records)
		if dropped := len(records) - len(buildings); dropped > 0 {
			c.logger.Debug("dropped malformed building records", zap.Int("dropped", dropped))
		}
		c.SetState(domain.ViewState{Buildings: buildings})
	})
	if fetchErr != nil {
		c.logger.Warn("show home screen failed", zap.Error(fetchErr))
		return fetchErr
	}
	return nil
}

// FilterBuildings narrows the current state to buildings named exactly name.
// The read and the replacement happen as one step, so a concurrent fetch is
// either filtered or shown whole, never overwritten by a stale filter.
func (c *Client) FilterBuildings(name string) {
	c.publish(func(current domain.ViewState) domain.ViewState {
		return current.FilterByName(name)
	})
}

// SearchBuildings asks the source for buildings matching query and shows
// them. On error the current state is kept.
func (c *Client) SearchBuildings(ctx context.Context, query string) error {
	if c.source == nil {
		return errSourceMissing
	}
	var searchErr error
	c.source.FilterBuildings(ctx, query, func(buildings []domain.Building, err error) {
		if err != nil {
			searchErr = err
			return
		}
		c.SetState(domain.ViewState{Buildings: buildings})
	})
	if searchErr != nil {
		c.logger.Warn("search buildings failed", zap.String("query", query), zap.Error(searchErr))
		return searchErr
	}
	return nil
}
