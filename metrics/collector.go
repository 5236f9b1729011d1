// Package metrics exports btmap tree statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexhholmes/btmap"
)

// StatsSource is anything that can report tree statistics. *btmap.Tree
// satisfies it for every key and value type.
type StatsSource interface {
	Stats() btmap.Stats
}

// Collector is a prometheus.Collector reading a StatsSource on every scrape.
type Collector struct {
	src StatsSource

	entries       *prometheus.Desc
	height        *prometheus.Desc
	nodes         *prometheus.Desc
	splits        *prometheus.Desc
	rootSplits    *prometheus.Desc
	merges        *prometheus.Desc
	borrows       *prometheus.Desc
	rootCollapses *prometheus.Desc
}

// NewCollector creates a collector for src. Metric names are prefixed with
// namespace and labelled with constLabels.
func NewCollector(namespace string, src StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "btree", name), help, labels, constLabels)
	}

	return &Collector{
		src:           src,
		entries:       desc("entries", "Number of keys stored in the tree."),
		height:        desc("height", "Number of levels in the tree."),
		nodes:         desc("nodes", "Number of live nodes."),
		splits:        desc("splits_total", "Node splits caused by inserts."),
		rootSplits:    desc("root_splits_total", "Root splits that added a level."),
		merges:        desc("merges_total", "Sibling merges caused by removes."),
		borrows:       desc("borrows_total", "Entries borrowed from a sibling during removes.", "side"),
		rootCollapses: desc("root_collapses_total", "Root collapses that removed a level."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.height
	ch <- c.nodes
	ch <- c.splits
	ch <- c.rootSplits
	ch <- c.merges
	ch <- c.borrows
	ch <- c.rootCollapses
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(st.Len))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(st.Height))
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(st.Nodes))
	ch <- prometheus.MustNewConstMetric(c.splits, prometheus.CounterValue, float64(st.Splits))
	ch <- prometheus.MustNewConstMetric(c.rootSplits, prometheus.CounterValue, float64(st.RootSplits))
	ch <- prometheus.MustNewConstMetric(c.merges, prometheus.CounterValue, float64(st.Merges))
	ch <- prometheus.MustNewConstMetric(c.borrows, prometheus.CounterValue, float64(st.BorrowsLeft), "left")
	ch <- prometheus.MustNewConstMetric(c.borrows, prometheus.CounterValue, float64(st.BorrowsRight), "right")
	ch <- prometheus.MustNewConstMetric(c.rootCollapses, prometheus.CounterValue, float64(st.RootCollapses))
}
