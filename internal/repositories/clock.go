package repositories

import "time"

// nowUnix returns the current time as unix seconds with sub-second
// precision, the representation notification timestamps are stored in.
func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
