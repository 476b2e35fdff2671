package config

import (
	"os"
	"time"

	"gopkg.in/ini.v1"
)

// DefaultPollTimeout bounds a single empty receive poll of the consumer
// loop between redraws.
const DefaultPollTimeout = 5 * time.Millisecond

// Config holds the dashboard settings. Values can come from an ini file
// and are overridden by CLI flags in the entrypoint.
type Config struct {
	Interfaces  []string
	Driver      string
	EDSDir      string
	LogFile     string
	QueueSize   int
	PollTimeout time.Duration
}

func Default() Config {
	return Config{
		Driver:      "socketcan",
		LogFile:     "canmon.log",
		PollTimeout: DefaultPollTimeout,
	}
}

// Load reads an ini config file, e.g. :
//
//	[canmon]
//	interfaces = can0,can1
//	driver     = socketcan
//	eds_dir    = /etc/canmon/eds
//	log_file   = /var/log/canmon.log
//
// A missing file simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}
	section := file.Section("canmon")
	if key := section.Key("interfaces"); key.String() != "" {
		cfg.Interfaces = key.Strings(",")
	}
	if v := section.Key("driver").String(); v != "" {
		cfg.Driver = v
	}
	if v := section.Key("eds_dir").String(); v != "" {
		cfg.EDSDir = v
	}
	if v := section.Key("log_file").String(); v != "" {
		cfg.LogFile = v
	}
	if v, err := section.Key("queue_size").Int(); err == nil && v > 0 {
		cfg.QueueSize = v
	}
	if v, err := section.Key("poll_timeout_ms").Int(); err == nil && v > 0 {
		cfg.PollTimeout = time.Duration(v) * time.Millisecond
	}
	return cfg, nil
}
