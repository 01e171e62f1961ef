package source

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"streamplot.klederson.com/internal/stream"
)

// WiFiScanner samples the signal of nearby access points in dBm, one series
// per access point. It prefers nmcli (no root needed) and falls back to iw.
type WiFiScanner struct {
	iface    string
	interval time.Duration
	useNmcli bool
	queue    *Queue
	log      *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// accessPoint is one parsed scan entry.
type accessPoint struct {
	bssid  string
	ssid   string
	signal float64 // dBm
}

// NewWiFiScanner creates a scanner. An empty iface is auto-detected for iw.
func NewWiFiScanner(iface string, interval time.Duration, queueSize int, log *slog.Logger) *WiFiScanner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	useNmcli := nmcliAvailable()
	if iface == "" && !useNmcli {
		iface = detectWiFiInterface()
	}
	return &WiFiScanner{
		iface:    iface,
		interval: interval,
		useNmcli: useNmcli,
		queue:    NewQueue(queueSize),
		log:      log.With("source", "wifi"),
		done:     make(chan struct{}),
	}
}

// WiFiScannerAvailable checks if nmcli or iw is available on the system.
func WiFiScannerAvailable() bool {
	return nmcliAvailable() || iwAvailable()
}

// Start begins periodic scans in a goroutine.
func (s *WiFiScanner) Start() error {
	if !WiFiScannerAvailable() {
		return fmt.Errorf("wifi scanning needs nmcli or iw in PATH")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop(ctx)
	return nil
}

func (s *WiFiScanner) loop(ctx context.Context) {
	defer close(s.done)
	for {
		for _, ap := range s.scan(ctx) {
			smp := stream.Sample{Key: deviceKey(ap.ssid, ap.bssid), Value: ap.signal}
			if !s.queue.Push(ctx, smp) {
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *WiFiScanner) scan(ctx context.Context) []accessPoint {
	var (
		cmd   *exec.Cmd
		parse func(string) []accessPoint
	)
	if s.useNmcli {
		// cached results; NetworkManager rescans on its own
		cmd = exec.CommandContext(ctx, "nmcli", "-t", "-f", "BSSID,SSID,FREQ,CHAN,SIGNAL", "dev", "wifi", "list")
		parse = parseNmcliScan
	} else {
		cmd = exec.CommandContext(ctx, "iw", "dev", s.iface, "scan")
		parse = parseIWScan
	}

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == nil {
			s.log.Debug("Scan failed", "cmd", cmd.Path, "error", err)
		}
		return nil
	}
	return parse(string(out))
}

// Next implements stream.SampleSource.
func (s *WiFiScanner) Next() (stream.Sample, bool) {
	return s.queue.Next()
}

// Stop halts scanning.
func (s *WiFiScanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Done is closed when the scan loop exits.
func (s *WiFiScanner) Done() <-chan struct{} {
	return s.done
}

// parseNmcliScan parses nmcli terse output, one BSSID:SSID:FREQ:CHAN:SIGNAL
// per line. Literal colons in values are escaped as \:.
// SIGNAL is a 0-100 percentage, mapped linearly onto -100..-30 dBm.
func parseNmcliScan(output string) []accessPoint {
	var results []accessPoint

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		const placeholder = "\x00"
		escaped := strings.ReplaceAll(line, `\:`, placeholder)
		parts := strings.Split(escaped, ":")
		for i := range parts {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(parts[i], placeholder, ":"))
		}
		if len(parts) < 5 {
			continue
		}

		bssid := strings.ToUpper(parts[0])
		if !isValidMAC(bssid) {
			continue
		}
		pct, err := strconv.Atoi(parts[4])
		if err != nil {
			continue
		}
		results = append(results, accessPoint{
			bssid:  bssid,
			ssid:   parts[1],
			signal: float64(-100 + pct*70/100),
		})
	}
	return results
}

// parseIWScan parses the output of `iw dev <iface> scan`. Blocks without a
// signal line are skipped.
func parseIWScan(output string) []accessPoint {
	var (
		results   []accessPoint
		current   *accessPoint
		hasSignal bool
	)
	flush := func() {
		if current != nil && hasSignal && isValidMAC(current.bssid) {
			results = append(results, *current)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		// "BSS aa:bb:cc:dd:ee:ff(on wlan0)"
		if strings.HasPrefix(line, "BSS ") {
			flush()
			mac := strings.TrimPrefix(line, "BSS ")
			if idx := strings.IndexByte(mac, '('); idx >= 0 {
				mac = mac[:idx]
			}
			current = &accessPoint{bssid: strings.ToUpper(strings.TrimSpace(mac))}
			hasSignal = false
			continue
		}
		if current == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "SSID: "):
			current.ssid = strings.TrimPrefix(trimmed, "SSID: ")
		case strings.HasPrefix(trimmed, "signal: "):
			sig := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "signal: "), " dBm"))
			if v, err := strconv.ParseFloat(sig, 64); err == nil {
				current.signal = v
				hasSignal = true
			}
		}
	}
	flush()
	return results
}

func isValidMAC(mac string) bool {
	if len(mac) != 17 {
		return false
	}
	for i, c := range mac {
		if i%3 == 2 {
			if c != ':' {
				return false
			}
			continue
		}
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			return false
		}
	}
	return true
}

func nmcliAvailable() bool {
	_, err := exec.LookPath("nmcli")
	return err == nil
}

func iwAvailable() bool {
	_, err := exec.LookPath("iw")
	return err == nil
}

// detectWiFiInterface finds the first wireless interface via `iw dev`.
func detectWiFiInterface() string {
	out, err := exec.Command("iw", "dev").Output()
	if err != nil {
		return "wlan0"
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Interface ") {
			return strings.TrimPrefix(line, "Interface ")
		}
	}
	return "wlan0"
}
