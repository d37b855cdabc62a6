package kiosk

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// countdown calls onTick every interval until stopped
type countdown struct {
	stopCh   chan struct{}
	stopOnce sync.Once
}

func startCountdown(clock clockwork.Clock, interval time.Duration, onTick func()) *countdown {
	cd := &countdown{stopCh: make(chan struct{})}
	ticker := clock.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-cd.stopCh:
				return
			case <-ticker.Chan():
				select {
				case <-cd.stopCh:
					return
				default:
				}
				onTick()
			}
		}
	}()

	return cd
}

// stop is safe to call from onTick and more than once. It does not wait for the loop.
func (cd *countdown) stop() {
	cd.stopOnce.Do(func() {
		close(cd.stopCh)
	})
}
