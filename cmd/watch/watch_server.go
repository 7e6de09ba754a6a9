package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Prometheus metrics server for watch. Gauges hold the most recent
// snapshot; scrapes between ticks see the same values.

import (
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promMetricPrefix = "ifspect_"

// prometheusInterfacesGaugeVec counts the interface records per capture. It
// carries only the capture label, so it lives outside the promMetrics map.
var prometheusInterfacesGaugeVec = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: promMetricPrefix + "interfaces",
		Help: "Number of interface records in the capture",
	},
	[]string{"capture"},
)

// watchMetricDefs names the per-interface gauges served on /metrics.
var watchMetricDefs = []struct {
	Name string
	Help string
}{
	{Name: "interface_up", Help: "Operational status, 1 when the interface is up"},
	{Name: "interface_speed_bits", Help: "Link speed in bits per second"},
	{Name: "interface_in_octets", Help: "Bytes received"},
	{Name: "interface_in_ucast", Help: "Unicast packets received"},
	{Name: "interface_in_nucast", Help: "Non-unicast packets received"},
	{Name: "interface_in_discards", Help: "Inbound packets discarded"},
	{Name: "interface_in_errors", Help: "Inbound packets with errors"},
	{Name: "interface_out_octets", Help: "Bytes sent"},
	{Name: "interface_out_ucast", Help: "Unicast packets sent"},
	{Name: "interface_out_nucast", Help: "Non-unicast packets sent"},
	{Name: "interface_out_discards", Help: "Outbound packets discarded"},
	{Name: "interface_out_errors", Help: "Outbound packets with errors"},
	{Name: "interface_out_qlen", Help: "Output queue length"},
}

var promMetrics = make(map[string]*prometheus.GaugeVec)
var promMetricsMutex sync.RWMutex

// addPrometheusMetrics safely adds metrics to the global prometheus map
func addPrometheusMetrics(newMetrics map[string]*prometheus.GaugeVec) {
	promMetricsMutex.Lock()
	defer promMetricsMutex.Unlock()

	for name, gauge := range newMetrics {
		if _, exists := promMetrics[name]; !exists {
			promMetrics[name] = gauge
			if err := prometheus.Register(gauge); err != nil {
				if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
					// use the existing collector
					promMetrics[name] = are.ExistingCollector.(*prometheus.GaugeVec)
				} else {
					slog.Error("Failed to register Prometheus metric", slog.String("name", name), slog.String("error", err.Error()))
				}
			}
		}
	}
}

// createPrometheusMetrics creates the per-interface gauge vectors
func createPrometheusMetrics() {
	localPromMetrics := make(map[string]*prometheus.GaugeVec)
	for _, def := range watchMetricDefs {
		promMetricName := promMetricPrefix + sanitizeMetricName(def.Name)
		gauge := prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricName,
				Help: def.Help,
			},
			[]string{"capture", "interface"},
		)
		localPromMetrics[promMetricName] = gauge
	}
	addPrometheusMetrics(localPromMetrics)
}

var rxInvalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// sanitizeMetricName replaces characters the Prometheus exposition format
// does not allow in metric names
func sanitizeMetricName(name string) string {
	return rxInvalidMetricChars.ReplaceAllString(name, "_")
}

// startPrometheusServer serves the registered gauges on /metrics
func startPrometheusServer(listenAddr string) {
	prometheus.MustRegister(prometheusInterfacesGaugeVec)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	slog.Info("Starting Prometheus metrics server", slog.String("address", listenAddr))
	go func() {
		server := &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 3 * time.Second,
		}
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Prometheus HTTP server ListenAndServe", slog.String("error", err.Error()))
		}
	}()
}

// updatePrometheusMetrics replaces the gauge values with the current
// snapshot. Resetting first drops series for interfaces that left the
// capture since the last tick.
func updatePrometheusMetrics(frames []watchFrame) {
	promMetricsMutex.RLock()
	defer promMetricsMutex.RUnlock()

	for _, gauge := range promMetrics {
		gauge.Reset()
	}
	prometheusInterfacesGaugeVec.Reset()
	for _, frame := range frames {
		prometheusInterfacesGaugeVec.WithLabelValues(frame.Capture).Set(float64(len(frame.Interfaces)))
		for _, iface := range frame.Interfaces {
			for name, value := range gaugeValues(iface) {
				if gauge, ok := promMetrics[promMetricPrefix+sanitizeMetricName(name)]; ok {
					gauge.WithLabelValues(frame.Capture, iface.Name).Set(value)
				}
			}
		}
	}
}

// gaugeValues flattens one record into the values behind watchMetricDefs.
func gaugeValues(iface watchInterface) map[string]float64 {
	up := 0.0
	if iface.Up {
		up = 1.0
	}
	return map[string]float64{
		"interface_up":           up,
		"interface_speed_bits":   float64(iface.SpeedBits),
		"interface_in_octets":    float64(iface.InOctets),
		"interface_in_ucast":     float64(iface.InUcast),
		"interface_in_nucast":    float64(iface.InNUcast),
		"interface_in_discards":  float64(iface.InDiscards),
		"interface_in_errors":    float64(iface.InErrors),
		"interface_out_octets":   float64(iface.OutOctets),
		"interface_out_ucast":    float64(iface.OutUcast),
		"interface_out_nucast":   float64(iface.OutNUcast),
		"interface_out_discards": float64(iface.OutDiscards),
		"interface_out_errors":   float64(iface.OutErrors),
		"interface_out_qlen":     float64(iface.OutQLen),
	}
}
