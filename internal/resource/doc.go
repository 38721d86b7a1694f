// Package resource implements admission control for the widget server.
//
// The Controller combines two limits:
//
//   - Rate: a token bucket (golang.org/x/time/rate) caps the sustained request
//     rate and allows short bursts.
//   - Concurrency: a weighted semaphore (golang.org/x/sync/semaphore) caps the
//     number of requests being served at the same time.
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    RequestsPerSecond: 500,
//	    Burst:             100,
//	    MaxInFlight:       64,
//	})
//
//	release, err := rc.Admit()
//	if err != nil {
//	    // ErrRateLimited or ErrOverloaded
//	    return err
//	}
//	defer release()
//
// Admit never blocks. Acquire waits for capacity until its context is done.
// Every limit is optional; a zero Config admits everything.
package resource
