package service

import "time"

// backoffDelay returns the delay before retry number attempt (1-based): the
// base delay doubled per attempt, capped at max.
//
//	backoffDelay(5s, 60s, 1) = 5s
//	backoffDelay(5s, 60s, 2) = 10s
//	backoffDelay(5s, 60s, 4) = 40s
//	backoffDelay(5s, 60s, 5) = 60s
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}

	if delay > max {
		return max
	}
	return delay
}
