package remote

import "time"

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// retryableStatus reports whether a response status indicates a transient
// condition worth retrying. Client errors other than rate limiting are not.
func retryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// backoffDelay doubles from initialBackoff per attempt, capped at maxBackoff.
func backoffDelay(attempt int) time.Duration {
	delay := initialBackoff << (attempt - 1)
	if delay > maxBackoff || delay <= 0 {
		return maxBackoff
	}
	return delay
}
