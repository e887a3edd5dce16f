package main

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hexaploid/glossa/langdet"
	"github.com/hexaploid/glossa/metrics"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	requestStatePending    = "pending"
	requestStateRejected   = "rejected"
	requestStateFailed     = "failed"
	requestStateProcessed  = "processed"
	requestStateProcessing = "processing"

	// Metric label for detections that produced no winner.
	undeterminedLanguage = "undetermined"

	limiterWaitSeconds = 30
)

var (
	allRequestStates = []string{
		requestStatePending,
		requestStateRejected,
		requestStateProcessing,
		requestStateProcessed,
		requestStateFailed,
	}
)

type ServerConfig struct {
	Listen             string          `yaml:"listen"`
	ShutdownTimeoutSec int             `yaml:"shutdown_timeout_sec"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

func newServerConfig() ServerConfig {
	return ServerConfig{
		Listen:             ":8080",
		ShutdownTimeoutSec: 10,
	}
}

func (c ServerConfig) Check() (err error) {
	if c.Listen == "" {
		err = fmt.Errorf("server listen address required")
		return
	}
	if c.ShutdownTimeoutSec <= 0 {
		err = fmt.Errorf("invalid 'shutdown_timeout_sec': %d", c.ShutdownTimeoutSec)
		return
	}

	// Rate Limit
	err = c.RateLimit.Check()
	return
}

// RateLimitConfig defines the parameters for the rate limiter.
type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	BucketSize int     `yaml:"bucket_size"`
	RefillTPS  float64 `yaml:"refill_token_per_sec"`
}

func (c RateLimitConfig) Check() (err error) {
	if !c.Enabled {
		return
	}
	if c.RefillTPS <= 0.0 {
		err = fmt.Errorf("invalid 'refill_token_per_sec': %v", c.RefillTPS)
		return
	}
	if c.BucketSize <= 0 {
		err = fmt.Errorf("invalid 'bucket_size': %d", c.BucketSize)
		return
	}
	return
}

func (c RateLimitConfig) NewLimiterFromConfig(logger *logrus.Entry) *rate.Limiter {
	if !c.Enabled {
		return nil
	}
	logger.Infof(
		"rate limiter refill: %.2f tokens/s, bucket size: %d",
		c.RefillTPS,
		c.BucketSize,
	)
	return rate.NewLimiter(rate.Limit(c.RefillTPS), c.BucketSize)
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Server owns the HTTP surface and the detector behind it. The detector and
// rate limiter swap on config reload; every request reads the current pair.
type Server struct {
	echo            *echo.Echo
	detector        *langdet.Detector
	limiter         *rate.Limiter
	listen          string
	shutdownTimeout time.Duration
	configMu        *sync.RWMutex
	logger          *logrus.Entry
}

func newServer(conf ServerConfig, detector *langdet.Detector) (s *Server, err error) {
	err = conf.Check()
	if err != nil {
		return
	}

	s = &Server{
		detector:        detector,
		listen:          conf.Listen,
		shutdownTimeout: time.Duration(conf.ShutdownTimeoutSec) * time.Second,
		configMu:        &sync.RWMutex{},
		logger:          logrus.WithField("component", "server"),
	}
	s.limiter = conf.RateLimit.NewLimiterFromConfig(s.logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.POST("/detect", s.handleDetect)
	e.GET("/languages", s.handleLanguages)
	e.GET("/healthz", s.handleHealthz)
	s.echo = e

	s.initRequestMetrics()
	initDetectionMetrics(detector)
	return
}

// Reload swaps in a rebuilt detector and rate limiter.
func (s *Server) Reload(conf ServerConfig, detector *langdet.Detector) (err error) {
	err = conf.Check()
	if err != nil {
		return
	}

	logrus.Trace("acquiring server.configMu")
	s.configMu.Lock()
	logrus.Trace("acquired server.configMu")

	s.detector = detector
	s.limiter = conf.RateLimit.NewLimiterFromConfig(s.logger)
	if s.listen != conf.Listen {
		logrus.Warn("listen address changed, please restart to apply")
	}

	s.configMu.Unlock()
	logrus.Trace("released server.configMu")

	initDetectionMetrics(detector)
	return
}

func (s *Server) currentDetector() *langdet.Detector {
	s.configMu.RLock()
	d := s.detector
	s.configMu.RUnlock()
	return d
}

func (s *Server) currentLimiter() *rate.Limiter {
	s.configMu.RLock()
	l := s.limiter
	s.configMu.RUnlock()
	return l
}

// Serve runs the HTTP listener until Shutdown is called.
func (s *Server) Serve() {
	s.logger.Infof("listening on %s", s.listen)
	if err := s.echo.Start(s.listen); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Errorf("shutdown failed: %v", err)
		return
	}
	s.logger.Info("server stopped gracefully")
}

func (s *Server) handleDetect(c echo.Context) (err error) {
	req := new(detectRequest)
	if err = c.Bind(req); err != nil {
		onRequestFailed()
		return
	}
	if err = c.Validate(req); err != nil {
		onRequestFailed()
		return
	}

	task := newDetectTask(req.Text)
	defer func() {
		if r := recover(); r != nil {
			task.logger.Errorf("panic recovered in handleDetect: %v", r)
			task.onFailed()
			err = echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}()

	task.onPending()
	if err = s.waitLimiter(c.Request().Context(), task.logger); err != nil {
		task.logger.Warn(err)
		task.onRejected()
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}
	task.onProcessing()

	detector := s.currentDetector()
	tokens, words := langdet.Tokenize(task.Text)
	if detector.ShouldSample(len(tokens), words) {
		metrics.MetricSampledDetections.Inc()
	}

	language, detected := detector.Detect(tokens, words)
	label := language
	if !detected {
		label = undeterminedLanguage
	}

	task.logger = task.logger.WithFields(logrus.Fields{
		"language": label,
		"words":    words,
	})
	task.logger.Info("completed")
	task.onDetected(label)

	return c.JSON(http.StatusOK, detectResponse{Language: language, Detected: detected})
}

func (s *Server) handleLanguages(c echo.Context) error {
	languages := s.currentDetector().Languages()
	slices.Sort(languages)
	return c.JSON(http.StatusOK, languagesResponse{Languages: languages})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// waitLimiter blocks until the limiter admits the request or the wait budget
// runs out. A nil limiter admits everything.
func (s *Server) waitLimiter(ctx context.Context, logger *logrus.Entry) (err error) {
	limiter := s.currentLimiter()
	if limiter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, limiterWaitSeconds*time.Second)
	defer cancel()

	logger.Trace("waiting for limiter")
	err = limiter.Wait(ctx)
	if err != nil {
		err = fmt.Errorf("rate limiter wait failed: %w", err)
		return
	}
	logger.Trace("acquired limiter")
	return
}

func (s *Server) initRequestMetrics() {
	for _, state := range allRequestStates {
		metrics.MetricDetectRequests.WithLabelValues(state).Set(0)
	}

	logrus.Info("all request metrics initialized")
}

// initDetectionMetrics registers a zero counter per loaded language so
// detection rates are visible before the first request arrives.
func initDetectionMetrics(d *langdet.Detector) {
	for _, language := range d.Languages() {
		metrics.MetricDetections.WithLabelValues(language).Add(0)
	}
	metrics.MetricDetections.WithLabelValues(undeterminedLanguage).Add(0)
	metrics.MetricProfilesLoaded.Set(float64(len(d.Languages())))
}
