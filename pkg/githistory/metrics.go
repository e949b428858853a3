// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package githistory

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsParser holds Prometheus metrics for the commit parser.
type metricsParser struct {
	once sync.Once

	commitsParsed prometheus.Counter

	deltaAdded    prometheus.Counter
	deltaDeleted  prometheus.Counter
	deltaModified prometheus.Counter
	deltaRenamed  prometheus.Counter
	deltaCopied   prometheus.Counter
}

var parserMetrics metricsParser

func (m *metricsParser) init() {
	m.once.Do(func() {
		m.commitsParsed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_commits_total",
			Help: "Commits successfully parsed from git log output",
		})
		m.deltaAdded = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_delta_added_total",
			Help: "Added-file deltas parsed",
		})
		m.deltaDeleted = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_delta_deleted_total",
			Help: "Deleted-file deltas parsed",
		})
		m.deltaModified = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_delta_modified_total",
			Help: "Modified-file deltas parsed",
		})
		m.deltaRenamed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_delta_renamed_total",
			Help: "Renamed-file deltas parsed",
		})
		m.deltaCopied = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_parse_delta_copied_total",
			Help: "Copied-file deltas parsed",
		})

		prometheus.MustRegister(
			m.commitsParsed,
			m.deltaAdded, m.deltaDeleted, m.deltaModified, m.deltaRenamed, m.deltaCopied,
		)
	})
}

// recordDeltaKind increments the parse-side counter matching kind.
func recordDeltaKind(kind ChangeKind) {
	parserMetrics.init()
	switch kind {
	case Added:
		parserMetrics.deltaAdded.Inc()
	case Deleted:
		parserMetrics.deltaDeleted.Inc()
	case Modified:
		parserMetrics.deltaModified.Inc()
	case Renamed:
		parserMetrics.deltaRenamed.Inc()
	case Copied:
		parserMetrics.deltaCopied.Inc()
	}
}

// metricsBuilder holds Prometheus metrics for the history builder.
type metricsBuilder struct {
	once sync.Once

	nodesCreated   prometheus.Counter
	linksMade      prometheus.Counter
	pathsAnchored  prometheus.Counter
	gatherDuration prometheus.Histogram
}

var builderMetrics metricsBuilder

func (m *metricsBuilder) init() {
	m.once.Do(func() {
		m.nodesCreated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_gather_nodes_created_total",
			Help: "HistoryNodes created while gathering history",
		})
		m.linksMade = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_gather_links_total",
			Help: "Previous-node back-links established while gathering history",
		})
		m.pathsAnchored = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "githistorian_gather_paths_anchored_total",
			Help: "Tracked paths anchored into the result tree",
		})
		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
		m.gatherDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "githistorian_gather_duration_seconds",
			Help:    "Wall-clock duration of a single GatherHistory call",
			Buckets: buckets,
		})

		prometheus.MustRegister(
			m.nodesCreated, m.linksMade, m.pathsAnchored, m.gatherDuration,
		)
	})
}
