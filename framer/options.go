package framer

// Option configures a Framer at construction time.
type Option func(*Framer)

// WithTrace attaches diagnostic hooks. Unset fields fall back to NoOpTrace.
func WithTrace(t *Trace) Option {
	return func(fr *Framer) {
		fr.trace = mergeTrace(t, NoOpTrace)
	}
}

// WithBufferSize overrides the scratch buffer capacity. Per spec.md §4.2 the
// buffer must be at least 64 KiB; values below that are raised to it.
func WithBufferSize(n int) Option {
	return func(fr *Framer) {
		if n < minBufferSize {
			n = minBufferSize
		}
		fr.bufSize = n
	}
}
