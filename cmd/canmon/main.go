package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsamfire/canmon/internal/config"
	"github.com/samsamfire/canmon/internal/ui"
	"github.com/samsamfire/canmon/pkg/bus"
	"github.com/samsamfire/canmon/pkg/msg"
	"github.com/samsamfire/canmon/pkg/parse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/samsamfire/canmon/pkg/can/socketcan"
	_ "github.com/samsamfire/canmon/pkg/can/virtual"
)

var (
	flagInterfaces []string
	flagDriver     string
	flagEDSDir     string
	flagConfig     string
	flagLogFile    string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "canmon [interface ...]",
	Short: "Live terminal dashboard for CANopen network traffic",
	Long: `canmon listens on one or more CAN interfaces, classifies traffic into
CANopen message types and shows the latest message per COB-ID in a
scrollable two-pane terminal view (heartbeats and everything else).`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&flagInterfaces, "interface", "i", nil, "CAN interface to monitor, e.g. can0 (repeatable)")
	rootCmd.Flags().StringVarP(&flagDriver, "driver", "d", "", "device driver : socketcan, virtual")
	rootCmd.Flags().StringVarP(&flagEDSDir, "eds", "e", "", "directory of EDS files used for decoding")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to ini config file")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "process log destination (the terminal belongs to the dashboard)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config : %w", err)
	}
	cfg.Interfaces = append(cfg.Interfaces, flagInterfaces...)
	cfg.Interfaces = append(cfg.Interfaces, args...)
	if flagDriver != "" {
		cfg.Driver = flagDriver
	}
	if flagEDSDir != "" {
		cfg.EDSDir = flagEDSDir
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if len(cfg.Interfaces) == 0 {
		return fmt.Errorf("no CAN interfaces given, use --interface or a config file")
	}

	// The terminal is owned by the dashboard, all logging goes to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file : %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	parser := parse.NewParser(logger)
	if cfg.EDSDir != "" {
		if err := parser.LoadEDSDirectory(cfg.EDSDir); err != nil {
			log.Warnf("could not load EDS directory %s : %v", cfg.EDSDir, err)
		}
	}

	frameBus := bus.NewBus(logger, cfg.Driver, cfg.QueueSize)
	attached := 0
	for _, name := range cfg.Interfaces {
		if err := frameBus.Attach(name); err != nil {
			// Fatal for this one device only, the dashboard still runs
			log.Errorf("could not attach %s : %v", name, err)
			continue
		}
		attached++
	}
	if attached == 0 {
		frameBus.ShutdownAll()
		return fmt.Errorf("none of the %d configured interfaces could be attached", len(cfg.Interfaces))
	}

	table := msg.NewTable(parser)
	dashboard := ui.NewDashboard(frameBus, table, cfg.Interfaces)
	dashboard.SetPollTimeout(cfg.PollTimeout)

	log.Infof("starting dashboard on %v", cfg.Interfaces)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	_, runErr := program.Run()

	frameBus.ShutdownAll()
	if dropped := frameBus.Dropped(); dropped > 0 {
		log.Warnf("%d frames dropped on backpressure", dropped)
	}
	log.Info("dashboard closed")
	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
