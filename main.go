package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hexaploid/glossa/langdet"
	"github.com/hexaploid/glossa/languages"
	"github.com/hexaploid/glossa/metrics"
	"github.com/sirupsen/logrus"
)

const (
	defaultConfigFile = "config.yml"

	logFormatText = "text"
	logFormatJSON = "json"
)

var (
	configFile = defaultConfigFile

	textFormatter = &logrus.TextFormatter{
		TimestampFormat:        time.RFC3339Nano,
		DisableColors:          true,
		DisableLevelTruncation: true,
		ForceQuote:             true,
		FullTimestamp:          true,
	}
)

func init() {
	defaultFile := defaultConfigFile
	if env := os.Getenv("CONFIG_FILE_PATH"); env != "" {
		defaultFile = env
	}
	flag.StringVar(&configFile, "config", defaultFile, "path to config file")

	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(textFormatter)
}

func main() {
	flag.Parse()

	appConfig, err := loadConfig(configFile)
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	logrus.Infof("loaded config from '%s'", configFile)

	err = reloadLogConfig(appConfig)
	if err != nil {
		logrus.Errorf("error applying log config: %v", err)
	}

	metrics.InitMetricServer(appConfig.Metric)

	detector, err := newDetector(appConfig.Detector)
	if err != nil {
		logrus.Fatal(err)
	}

	server, err := newServer(appConfig.Server, detector)
	if err != nil {
		logrus.Fatal(err)
	}

	go server.Serve()
	handleSignals(server)
}

// newDetector builds a detector from the configured profile directory, or
// from the embedded profiles when none is set.
func newDetector(conf DetectorConfig) (*langdet.Detector, error) {
	var fsys fs.FS = languages.FS
	if conf.ProfilesDir != "" {
		fsys = os.DirFS(conf.ProfilesDir)
		logrus.Infof("loading language profiles from '%s'", conf.ProfilesDir)
	} else {
		logrus.Info("loading embedded language profiles")
	}

	profiles, err := langdet.LoadProfiles(fsys)
	if err != nil {
		return nil, err
	}
	return langdet.New(conf.Config, profiles)
}

func reloadLogConfig(conf *Config) (err error) {
	logLevel, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return
	}

	switch conf.LogFormat {
	case "", logFormatText:
		logrus.SetFormatter(textFormatter)
	case logFormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		err = fmt.Errorf("unknown log format '%s'", conf.LogFormat)
		return
	}

	logrus.Infof("log level changed to: %s", conf.LogLevel)
	logrus.SetLevel(logLevel)
	return
}

func handleSignals(server *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for sig := range sigChan {
		switch sig {
		case syscall.SIGHUP:
			logrus.Infof("received %s, attempting to reload config", sig.String())

			appConfig, err := loadConfig(configFile)
			if err != nil {
				logrus.Errorf("error reloading config: %v", err)
				continue
			}

			err = reloadLogConfig(appConfig)
			if err != nil {
				logrus.Errorf("error applying log config: %v", err)
				continue
			}

			detector, err := newDetector(appConfig.Detector)
			if err != nil {
				logrus.Error(err)
				continue
			}

			err = server.Reload(appConfig.Server, detector)
			if err != nil {
				logrus.Error(err)
				continue
			}

			logrus.Info("config reloaded")

		case syscall.SIGINT, syscall.SIGTERM:
			logrus.Infof("received %s, shutting down", sig.String())
			server.Shutdown()
			return
		}
	}
}
