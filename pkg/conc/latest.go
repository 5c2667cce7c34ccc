package conc

// Latest hands a background result to a polling loop, keeping only the
// result of the most recent request. Next and Check belong to the polling
// goroutine; the send funcs Next returns may run anywhere.
type Latest[T any] struct {
	c chan T
}

// Next starts a new request and returns the func that delivers its result.
// Results delivered through funcs from earlier requests are never seen.
func (l *Latest[T]) Next() func(T) bool {
	c := make(chan T, 1)
	l.c = c
	return func(v T) bool { return TrySend(v, c) }
}

// Check receives the newest request's result without blocking.
func (l *Latest[T]) Check() (T, bool) {
	if l.c == nil {
		var t T
		return t, false
	}
	return Check(l.c)
}
