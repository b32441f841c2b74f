package deps

import (
	"time"

	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/store/kvstore"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store *kvstore.Store // envelope document store over the kv adapter

	// Password is the shared secret for write endpoints. Empty means the
	// server is misconfigured and writes are refused.
	Password string

	SnapshotTrigger chan struct{} // channel to trigger a manual envelope snapshot

	RateLimitBurst  int // token bucket capacity per client IP
	RateLimitPerMin int // bucket refill per client IP per minute
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
