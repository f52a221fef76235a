// internal/carousel/carousel.go
package carousel

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Indicator is one dot under the carousel.
type Indicator struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// View is everything a renderer needs to paint the carousel.
type View struct {
	Index      int         `json:"index"`
	Total      int         `json:"total"`
	Item       Item        `json:"item"`
	Indicators []Indicator `json:"indicators"`
}

// Carousel owns the displayed index for one mounted dashboard. The rotation
// goroutine and request handlers mutate it only through the transitions on
// State, serialised by mu.
type Carousel struct {
	mu      sync.Mutex
	items   []Item
	state   State
	rotator *Rotator
}

// New mounts a carousel over items at index 0. Rotation starts with Start.
func New(items []Item, clock clockwork.Clock, interval time.Duration) (*Carousel, error) {
	st, err := NewState(len(items))
	if err != nil {
		return nil, err
	}
	c := &Carousel{items: copyItems(items), state: st}
	c.rotator = NewRotator(clock, interval, func() { c.Next() })
	return c, nil
}

func (c *Carousel) Start() {
	c.rotator.Start()
}

// Close stops rotation and resets the index. The carousel can be started
// again afterwards.
func (c *Carousel) Close() {
	c.rotator.Stop()
	c.mu.Lock()
	c.state.Index = 0
	c.mu.Unlock()
}

func (c *Carousel) Rotating() bool {
	return c.rotator.Running()
}

func (c *Carousel) Next() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Advance()
	return c.state
}

func (c *Carousel) Prev() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Retreat()
	return c.state
}

func (c *Carousel) JumpTo(i int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.state.JumpTo(i)
	if err != nil {
		return c.state, err
	}
	c.state = st
	return c.state, nil
}

// SetItems swaps the item sequence. When its length changes the rotation is
// re-subscribed so that the schedule is always bound to the current length.
func (c *Carousel) SetItems(items []Item) error {
	c.mu.Lock()
	st, err := c.state.Resize(len(items))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	lengthChanged := st.Len != c.state.Len
	c.items = copyItems(items)
	c.state = st
	c.mu.Unlock()

	// The restart waits for an in-flight tick, which needs mu.
	if lengthChanged {
		c.rotator.RestartIfRunning()
	}
	return nil
}

func (c *Carousel) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Carousel) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyItems(c.items)
}

func (c *Carousel) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	indicators := make([]Indicator, len(c.items))
	for i := range c.items {
		indicators[i] = Indicator{Index: i, Active: i == c.state.Index}
	}
	return View{
		Index:      c.state.Index,
		Total:      c.state.Len,
		Item:       c.items[c.state.Index],
		Indicators: indicators,
	}
}
