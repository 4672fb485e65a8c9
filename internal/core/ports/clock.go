package ports

import "time"

// Clock supplies the current time to projections that depend on it.
type Clock interface {
	Now() time.Time
}
