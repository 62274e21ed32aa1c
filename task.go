package parallel

import "fmt"

// execItem runs one user-function invocation with panic containment.
// A panic must not unwind the worker loop: that would skip the task's
// mandatory signals and starve the collector, so it is converted into an
// error wrapping ErrPanicked instead.
func execItem[R any](call func() (R, error)) (result R, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = *(new(R))
			err = fmt.Errorf("%w: %v", ErrPanicked, p)
		}
	}()
	return call()
}
