package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"brew-assistant/internal/menu"
)

func TestGetOrCreate(t *testing.T) {
	st := NewMemoryStore(time.Hour)

	s, err := st.GetOrCreate("+447700900001")
	assert.NoError(t, err)
	assert.Equal(t, StateAwaitingTable, s.State)
	assert.Empty(t, s.TableNumber)
	assert.Empty(t, s.Cart)
	assert.Empty(t, s.Pending)

	again, err := st.GetOrCreate("+447700900001")
	assert.NoError(t, err)
	assert.Same(t, s, again, "same sender must get the same session instance")

	other, err := st.GetOrCreate("+447700900002")
	assert.NoError(t, err)
	assert.NotSame(t, s, other)
	assert.Equal(t, 2, st.Len())
}

func TestGetOrCreateNoSender(t *testing.T) {
	st := NewMemoryStore(time.Hour)

	_, err := st.GetOrCreate("")
	assert.ErrorIs(t, err, ErrNoSender)
	_, err = st.GetOrCreate("   ")
	assert.ErrorIs(t, err, ErrNoSender)
	assert.ErrorIs(t, st.Do("", func(*Session) error { return nil }), ErrNoSender)
}

func TestDoSerializesPerSender(t *testing.T) {
	st := NewMemoryStore(time.Hour)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = st.Do("sender", func(s *Session) error {
				s.Cart = append(s.Cart, CartLine{ItemName: "Latte", UnitPrice: 370, Category: menu.CategoryCoffee})
				return nil
			})
		}()
	}
	wg.Wait()

	s, err := st.GetOrCreate("sender")
	assert.NoError(t, err)
	assert.Len(t, s.Cart, n)
	assert.Equal(t, menu.Pence(n*370), s.CartTotal())
}

func TestSweep(t *testing.T) {
	st := NewMemoryStore(time.Hour)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	_, _ = st.GetOrCreate("stale")
	clock = clock.Add(2 * time.Hour)
	_, _ = st.GetOrCreate("fresh")

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())

	// the surviving session is still reachable and still the same one
	s, err := st.GetOrCreate("fresh")
	assert.NoError(t, err)
	assert.Equal(t, "fresh", s.SenderID)
}

func TestSweepDisabled(t *testing.T) {
	st := NewMemoryStore(0)
	_, _ = st.GetOrCreate("a")
	assert.Equal(t, 0, st.Sweep())
	assert.Equal(t, 1, st.Len())
}

func TestTorn(t *testing.T) {
	s := New("x")
	assert.False(t, s.Torn())

	s.State = StateAwaitingMilkChoice
	assert.True(t, s.Torn(), "milk sub-dialogue with empty queue is torn")

	s.Pending = []menu.Item{{Name: "Latte", Price: 370, Category: menu.CategoryCoffee}}
	assert.False(t, s.Torn())

	s.State = StateBrowsing
	assert.True(t, s.Torn(), "queued items outside the milk sub-dialogue are torn")
}
