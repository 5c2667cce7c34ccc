package conc

// Check receives from c without blocking.
func Check[T any](c chan T) (T, bool) {
	select {
	case r := <-c:
		return r, true
	default:
	}
	var t T
	return t, false
}

// TrySend sends v on c without blocking. It reports whether v was sent.
func TrySend[T any](v T, c chan T) bool {
	select {
	case c <- v:
		return true
	default:
	}
	return false
}
