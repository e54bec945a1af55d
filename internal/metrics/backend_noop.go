package metrics

// NoopBackend discards every emission. It is the default backend
// (metrics.backend=noop) for agents that have no statsd collector deployed.
type NoopBackend struct{}

func (NoopBackend) Gauge(name string, value float64)                    {}
func (NoopBackend) Counter(name string, value float64, sampleRate float64) {}
func (NoopBackend) Timer(name string, valueMS float64)                  {}
func (NoopBackend) Meter(name string, value float64)                    {}
