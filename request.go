package main

import (
	"github.com/google/uuid"
	"github.com/hexaploid/glossa/metrics"
	"github.com/sirupsen/logrus"
)

type detectRequest struct {
	Text string `json:"text" validate:"required"`
}

// detectResponse mirrors the detector's comma-ok result. Language is empty
// whenever Detected is false.
type detectResponse struct {
	Language string `json:"language"`
	Detected bool   `json:"detected"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
}

// DetectTask carries one detect request through its lifecycle, keeping the
// request log fields and state metrics in step.
type DetectTask struct {
	logger  *logrus.Entry
	Text    string
	TraceId string
}

func newDetectTask(text string) *DetectTask {
	t := &DetectTask{
		Text:    text,
		TraceId: uuid.NewString(),
	}
	t.logger = logrus.WithFields(logrus.Fields{
		"trace_id": t.TraceId,
		"chars":    len(text),
	})
	return t
}

func (t *DetectTask) onFailed() {
	metrics.MetricDetectRequests.WithLabelValues(requestStateFailed).Inc()
	t.onProcessed()
}

func (t *DetectTask) onRejected() {
	metrics.MetricDetectRequests.WithLabelValues(requestStatePending).Dec()
	metrics.MetricDetectRequests.WithLabelValues(requestStateRejected).Inc()
	t.logger.Infoln("request rejected by rate limiter")
}

func (t *DetectTask) onPending() {
	metrics.MetricDetectRequests.WithLabelValues(requestStatePending).Inc()
}

func (t *DetectTask) onProcessing() {
	metrics.MetricDetectRequests.WithLabelValues(requestStatePending).Dec()
	metrics.MetricDetectRequests.WithLabelValues(requestStateProcessing).Inc()
}

func (t *DetectTask) onDetected(language string) {
	metrics.MetricDetectRequests.WithLabelValues(requestStateProcessed).Inc()
	metrics.MetricDetections.WithLabelValues(language).Inc()
	t.onProcessed()
}

func (t *DetectTask) onProcessed() {
	metrics.MetricDetectRequests.WithLabelValues(requestStateProcessing).Dec()
}

// onRequestFailed counts requests that never formed a valid detect task.
func onRequestFailed() {
	metrics.MetricDetectRequests.WithLabelValues(requestStateFailed).Inc()
}
