package source

import (
	"context"
	"fmt"
	"log/slog"

	"tinygo.org/x/bluetooth"

	"streamplot.klederson.com/internal/stream"
)

// BLEScanner turns BLE advertisements into RSSI samples, one series per
// device. Devices are keyed by advertised name, or by address when unnamed.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	queue   *Queue
	log     *slog.Logger
	cancel  context.CancelFunc
}

// NewBLEScanner creates a scanner on the default adapter.
func NewBLEScanner(queueSize int, log *slog.Logger) *BLEScanner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
		queue:   NewQueue(queueSize),
		log:     log.With("source", "ble"),
	}
}

// Start enables the adapter and scans in a goroutine.
func (s *BLEScanner) Start() error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if ctx.Err() != nil {
				return
			}
			s.queue.Push(ctx, stream.Sample{
				Key:   deviceKey(result.LocalName(), result.Address.String()),
				Value: float64(result.RSSI),
			})
		})
		if err != nil && ctx.Err() == nil {
			s.log.Warn("Scan stopped", "error", err)
		}
	}()

	return nil
}

func deviceKey(name, mac string) string {
	if name == "" {
		return mac
	}
	if len(mac) >= 5 {
		return name + " " + mac[len(mac)-5:]
	}
	return name
}

// Next implements stream.SampleSource.
func (s *BLEScanner) Next() (stream.Sample, bool) {
	return s.queue.Next()
}

// Stop halts the scan.
func (s *BLEScanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	_ = s.adapter.StopScan()
}
