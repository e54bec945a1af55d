package metrics

import (
	"fmt"
	"net"

	"github.com/supermari0/ironic-python-agent/pkg/agentlog"
)

// StatsdBackend formats name:value|type[@rate] and sends one UDP datagram
// per call. The socket is opened fresh per send rather than held open and
// shared: concurrent emitters (one per command worker goroutine, see
// internal/rpc/worker.go) must never contend over a single net.Conn.
type StatsdBackend struct {
	Addr string // host:port
}

func NewStatsdBackend(host string, port int) *StatsdBackend {
	return &StatsdBackend{Addr: fmt.Sprintf("%v:%v", host, port)}
}

func (s *StatsdBackend) send(line string) {
	conn, err := net.Dial("udp", s.Addr)
	if err != nil {
		agentlog.Error("statsd dial %v: %v", s.Addr, err)
		return
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line)); err != nil {
		agentlog.Error("statsd write %v: %v", s.Addr, err)
	}
}

func (s *StatsdBackend) Gauge(name string, value float64) {
	s.send(fmt.Sprintf("%v:%v|g", name, value))
}

func (s *StatsdBackend) Counter(name string, value float64, sampleRate float64) {
	if sampleRate < 1 {
		s.send(fmt.Sprintf("%v:%v|c@%v", name, value, sampleRate))
		return
	}
	s.send(fmt.Sprintf("%v:%v|c", name, value))
}

func (s *StatsdBackend) Timer(name string, valueMS float64) {
	s.send(fmt.Sprintf("%v:%v|ms", name, valueMS))
}

func (s *StatsdBackend) Meter(name string, value float64) {
	s.send(fmt.Sprintf("%v:%v|m", name, value))
}
