package profiler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

const (
	namespace = "arsigner"

	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"

	megabyte = 1 << 20
)

// ServiceOpts holds configuration options for the profiler service.
type ServiceOpts struct {
	Datadir string
}

func (o ServiceOpts) validate() error {
	if len(o.Datadir) == 0 {
		return fmt.Errorf("missing profiler datadir")
	}
	return nil
}

// ProfilerService collects statistics about the stages of the transfer
// pipeline and dumps them, along with the Go runtime ones, to a file in the
// datadir when stopped.
type ProfilerService struct {
	opts          ServiceOpts
	registry      *prometheus.Registry
	signerLatency *prometheus.HistogramVec
	submissions   *prometheus.CounterVec

	log  func(format string, a ...interface{})
	warn func(err error, format string, a ...interface{})
}

// NewService returns a new Profiler instance.
func NewService(opts ServiceOpts) (*ProfilerService, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	signerLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signer_round_trip_seconds",
		Help:      "Time spent waiting for the remote signer.",
		Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 300, 900},
	}, []string{"outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Transactions submitted to the node by outcome.",
	}, []string{"outcome"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		signerLatency, submissions,
		collectors.NewGoCollector(),
	)

	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("profiler: %s", format)
		log.Debugf(format, a...)
	}
	warnFn := func(err error, format string, a ...interface{}) {
		format = fmt.Sprintf("profiler: %s", format)
		log.WithError(err).Warnf(format, a...)
	}
	return &ProfilerService{
		opts, registry, signerLatency, submissions, logFn, warnFn,
	}, nil
}

func (s *ProfilerService) ObserveSignerRoundTrip(elapsed time.Duration, err error) {
	s.signerLatency.WithLabelValues(outcome(err, outcomeSuccess)).Observe(
		elapsed.Seconds(),
	)
}

func (s *ProfilerService) ObserveSubmission(accepted bool, err error) {
	label := outcomeRejected
	if accepted {
		label = outcomeAccepted
	}
	s.submissions.WithLabelValues(outcome(err, label)).Inc()
}

// Stop logs memory usage and dumps the collected statistics.
func (s *ProfilerService) Stop() {
	s.printMemoryStatistics()
	path, err := s.Dump()
	if err != nil {
		s.warn(err, "error while dumping stats")
		return
	}
	s.log("stats dumped to %s", path)
}

// Dump writes the collected statistics to a new file in the datadir and
// returns its path.
func (s *ProfilerService) Dump() (string, error) {
	if err := os.MkdirAll(s.opts.Datadir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.opts.Datadir, time.Now().Format(time.RFC3339))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	metricFamily, err := s.registry.Gather()
	if err != nil {
		return "", err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return "", err
		}
	}

	return path, nil
}

// printMemoryStatistics logs memory statistics.
func (s *ProfilerService) printMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s.log(
		"total allocated: %.3fMB, heap allocated: %.3fMB, "+
			"allocated objects count: %v, freed objects count: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

func outcome(err error, label string) string {
	if err != nil {
		return outcomeError
	}
	return label
}

// toMegabytes returns given memory in bytes to megabytes.
func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / megabyte
}
