package handler

import (
	"check_isam/config"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pebbe/zmq4"
	"github.com/sirupsen/logrus"
)

// Forwarder pushes check reports to a collector over a ZeroMQ PUSH socket.
// Each report uses a fresh socket: a plugin run sends exactly one message.
type Forwarder struct {
	endpoint string

	timeout time.Duration

	log *logrus.Logger
}

// NewForwarder returns a Forwarder for cfg. The timeout bounds both the send
// and the time a pending message may hold up Close.
func NewForwarder(cfg config.Forward, log *logrus.Logger) *Forwarder {

	return &Forwarder{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		log:      log,
	}
}

// Forward encodes report as JSON and sends it to the configured endpoint.
func (f *Forwarder) Forward(report Report) error {

	data, err := json.Marshal(report)

	if err != nil {

		return fmt.Errorf("failed to marshal report: %w", err)
	}

	socket, err := zmq4.NewSocket(zmq4.PUSH)

	if err != nil {

		return fmt.Errorf("failed to create PUSH socket: %w", err)
	}

	defer socket.Close()

	if err := socket.SetLinger(f.timeout); err != nil {

		return fmt.Errorf("failed to set linger: %w", err)
	}

	if err := socket.SetSndtimeo(f.timeout); err != nil {

		return fmt.Errorf("failed to set send timeout: %w", err)
	}

	if err := socket.Connect(f.endpoint); err != nil {

		return fmt.Errorf("failed to connect PUSH socket to %s: %w", f.endpoint, err)
	}

	startTime := time.Now()

	if _, err := socket.SendBytes(data, 0); err != nil {

		return fmt.Errorf("failed to send report to %s: %w", f.endpoint, err)
	}

	f.log.Debugf("Forwarded %s report for %s to %s in %v", report.Check, report.Host, f.endpoint, time.Since(startTime))

	return nil
}
