package metrics

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEmptyBeforeFirstPublish(t *testing.T) {
	s := NewStore()

	snap := s.Current()
	require.NotNil(t, snap, "Current must never return nil")
	assert.Empty(t, snap.Lines)
}

func TestStorePublishCurrent(t *testing.T) {
	s := NewStore()
	snap := &Snapshot{
		TakenAt: time.Now(),
		Lines:   []Line{{Text: "IPv4: 10.0.0.7"}, {Text: "CPU Load: 12.5%"}},
	}

	s.Publish(snap)
	got := s.Current()

	require.Same(t, snap, got)
	assert.Equal(t, snap.Lines, got.Lines)
}

func TestStoreReplacesWholeSnapshot(t *testing.T) {
	s := NewStore()
	first := &Snapshot{Lines: []Line{{Text: "one"}}}
	second := &Snapshot{Lines: []Line{{Text: "two"}, {Text: "three"}}}

	s.Publish(first)
	s.Publish(second)

	assert.Equal(t, second.Lines, s.Current().Lines)
}

func TestStoreIgnoresNilPublish(t *testing.T) {
	s := NewStore()
	snap := &Snapshot{Lines: []Line{{Text: "keep"}}}
	s.Publish(snap)

	s.Publish(nil)

	assert.Same(t, snap, s.Current())
}

// Readers must never observe a torn snapshot while the writer races
// them: every read sees a complete line set from exactly one publish.
func TestStoreConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := NewStore()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			text := strconv.Itoa(i)
			s.Publish(&Snapshot{Lines: []Line{{Text: text}, {Text: text}}})
		}
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10000; j++ {
				snap := s.Current()
				if len(snap.Lines) == 0 {
					continue
				}
				if snap.Lines[0] != snap.Lines[1] {
					t.Error("observed torn snapshot")
					return
				}
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(done)
	wg.Wait()
}
