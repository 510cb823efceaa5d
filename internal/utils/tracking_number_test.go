package utils

import (
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingPattern = regexp.MustCompile(`^TRG-\d{8}-[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{6}$`)

func TestGenerateTrackingNumber_Format(t *testing.T) {
	day := time.Date(2025, time.January, 14, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		got, err := GenerateTrackingNumber(day)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "TRG-20250114-"), got)
		assert.Regexp(t, trackingPattern, got)
	}
}

func TestGenerateTrackingNumber_UniqueAcrossConcurrentBurst(t *testing.T) {
	const workers = 8
	const perWorker = 25

	day := time.Now()
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got, err := GenerateTrackingNumber(day)
				assert.NoError(t, err)
				mu.Lock()
				seen[got] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
