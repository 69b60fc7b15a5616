package domain

// MaxHandles bounds how many live connection handles are kept per user.
// Newest handles win; the oldest is dropped once the cap is reached.
const MaxHandles = 3

// AppendHandle returns the handle list after a connect. A handle already
// present is left where it is (a handle that was evicted earlier counts
// as new). The second result is false when the list did not change.
func AppendHandle(handles []string, handle string) ([]string, bool) {
	for _, h := range handles {
		if h == handle {
			return handles, false
		}
	}
	next := append(append([]string(nil), handles...), handle)
	if len(next) > MaxHandles {
		next = next[len(next)-MaxHandles:]
	}
	return next, true
}

// RemoveHandle returns the handle list after a disconnect. Removing a
// handle that is not present is a no-op, so disconnect events arriving
// after cleanup are harmless.
func RemoveHandle(handles []string, handle string) ([]string, bool) {
	for i, h := range handles {
		if h == handle {
			next := append(append([]string(nil), handles[:i]...), handles[i+1:]...)
			return next, true
		}
	}
	return handles, false
}
