package apperror

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
	retryMaxWait  = time.Second
)

// Retry runs op up to a small fixed budget, backing off exponentially between
// attempts, but only while the failure is classified transient. Permanent
// errors return immediately.
func Retry(op func() error) error {
	var err error
	wait := retryBaseWait
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("transient storage error, retrying")
		time.Sleep(wait)
		wait *= 2
		if wait > retryMaxWait {
			wait = retryMaxWait
		}
	}
	return err
}
