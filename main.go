package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"streamplot.klederson.com/internal/app"
	"streamplot.klederson.com/internal/config"
	"streamplot.klederson.com/internal/logging"
	"streamplot.klederson.com/internal/source"
	"streamplot.klederson.com/internal/stream"
)

var (
	flagTest      bool
	flagNumTests  int
	flagPort      string
	flagBaud      int
	flagStdin     bool
	flagBLE       bool
	flagWiFi      bool
	flagWiFiIface string
	flagConfig    string
	flagStorage   string
	flagHistory   int
	flagExportDir string
	flagListPorts bool
	flagLog       string
	flagLogLevel  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamplot",
		Short: "Streamplot - live terminal plotter for labeled numeric streams",
		Long: `Streamplot reads labeled samples and draws them as live line charts,
one series per label, with per-axis auto/manual ranges.

Samples come from a serial device or stdin as lines of KEY:value[,KEY:value],
from BLE advertisements (RSSI per device), from WiFi scans (signal per
access point), or from a random-walk generator.
Every series is exported to CSV when the program exits.

BLE scanning requires sudo or CAP_NET_ADMIN capability.
Use --test to try it without any hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.BoolVarP(&flagTest, "test", "t", false, "Plot random-walk test series instead of a device")
	f.IntVarP(&flagNumTests, "numtests", "n", config.DefaultNumTests, "Number of random-walk series with --test")
	f.StringVarP(&flagPort, "port", "p", "", "Serial port to read samples from")
	f.IntVarP(&flagBaud, "baud", "b", config.DefaultBaud, "Serial baud rate")
	f.BoolVar(&flagStdin, "stdin", false, "Read sample lines from standard input")
	f.BoolVar(&flagBLE, "ble", false, "Plot RSSI of nearby BLE devices")
	f.BoolVar(&flagWiFi, "wifi", false, "Plot signal of nearby WiFi access points (nmcli or iw)")
	f.StringVar(&flagWiFiIface, "wifi-iface", "", "Wireless interface for iw scans (auto-detected when empty)")
	f.StringVar(&flagConfig, "config", "streamplot.yaml", "Path to YAML config file (optional)")
	f.StringVar(&flagStorage, "storage", "", "Series storage: append or ring (overrides config)")
	f.IntVar(&flagHistory, "history", 0, "Samples kept per series with ring storage (overrides config)")
	f.StringVar(&flagExportDir, "export-dir", "", "Directory for CSV export on exit (overrides config)")
	f.BoolVar(&flagListPorts, "list-ports", false, "List serial ports and exit")
	f.StringVar(&flagLog, "log", "", "Log file path (overrides config, logs are discarded when empty)")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagListPorts {
		return listPorts()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	sources, desc, err := openSources(cfg, log)
	if err != nil {
		return err
	}
	log.Info("starting", "source", desc, "storage", cfg.Storage, "history", cfg.HistorySize)

	model, err := app.New(app.Options{
		Config:  cfg,
		Source:  desc,
		Sources: sources,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if flagStdin {
		// stdin carries samples, keys come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(model, opts...)

	_, runErr := p.Run()

	res, err := model.Export(cfg.ExportDir, time.Now())
	switch {
	case err != nil:
		log.Error("export failed", "error", err)
		fmt.Fprintf(os.Stderr, "Could not export data: %v\n", err)
	case len(res.Files) > 0:
		fmt.Fprintf(os.Stderr, "Exported %d series to %s\n", len(res.Files), res.Dir)
	}

	return runErr
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("storage") {
		cfg.Storage = strings.ToLower(flagStorage)
	}
	if flags.Changed("history") {
		cfg.HistorySize = flagHistory
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir = flagExportDir
	}
	if flags.Changed("port") {
		cfg.Serial.Port = flagPort
	}
	if flags.Changed("baud") {
		cfg.Serial.Baud = flagBaud
	}
	if flags.Changed("log") {
		cfg.Log.Path = flagLog
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// openSources starts every selected sample source. Sources already started
// are stopped again when a later one fails.
func openSources(cfg config.Config, log *slog.Logger) ([]stream.SampleSource, string, error) {
	var (
		sources []stream.SampleSource
		names   []string
		stops   []func()
	)
	fail := func(err error) ([]stream.SampleSource, string, error) {
		for _, stop := range stops {
			stop()
		}
		return nil, "", err
	}

	if flagTest {
		if flagNumTests < 1 {
			return fail(fmt.Errorf("--numtests must be at least 1, got %d", flagNumTests))
		}
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		walk := source.NewRandomWalk(flagNumTests, config.RandomWalkStart, rng)
		walk.SetInterval(config.RandomWalkInterval)
		sources = append(sources, walk)
		names = append(names, fmt.Sprintf("random walk x%d", flagNumTests))
	}

	if cfg.Serial.Port != "" {
		sr, err := source.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud, config.QueueSize, log)
		if err != nil {
			return fail(err)
		}
		if err := sr.Start(); err != nil {
			return fail(err)
		}
		stops = append(stops, sr.Stop)
		sources = append(sources, sr)
		names = append(names, fmt.Sprintf("%s @%d", cfg.Serial.Port, cfg.Serial.Baud))
	}

	if flagStdin {
		lr := source.NewLineReader("stdin", os.Stdin, config.QueueSize, log)
		if err := lr.Start(); err != nil {
			return fail(err)
		}
		stops = append(stops, lr.Stop)
		sources = append(sources, lr)
		names = append(names, "stdin")
	}

	if flagBLE {
		ble := source.NewBLEScanner(config.QueueSize, log)
		if err := ble.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./streamplot --ble")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./streamplot")
			fmt.Fprintln(os.Stderr, "  ./streamplot --test    (random data, no hardware needed)")
			return fail(err)
		}
		stops = append(stops, ble.Stop)
		sources = append(sources, ble)
		names = append(names, "BLE RSSI")
	}

	if flagWiFi {
		wifi := source.NewWiFiScanner(flagWiFiIface, config.WiFiScanInterval, config.QueueSize, log)
		if err := wifi.Start(); err != nil {
			return fail(err)
		}
		stops = append(stops, wifi.Stop)
		sources = append(sources, wifi)
		names = append(names, "WiFi signal")
	}

	if len(sources) == 0 {
		return nil, "", errors.New("no sample source: use --test, --port, --stdin, --ble or --wifi (see --help)")
	}
	return sources, strings.Join(names, ", "), nil
}

func listPorts() error {
	ports, err := source.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}
