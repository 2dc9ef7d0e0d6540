package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeTrackerFollowsUpdates(t *testing.T) {
	tr := newSizeTracker(80, 24)
	w, h, err := tr.getSize()
	assert.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.update(100+i, 30)
			_, _, _ = tr.getSize()
		}()
	}
	wg.Wait()
	tr.update(120, 40)

	w, h, _ = tr.getSize()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}
