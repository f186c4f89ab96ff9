package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBPoolTotalConns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_total_conns",
			Help: "Total number of connections in the database pool",
		},
	)

	DBPoolIdleConns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_idle_conns",
			Help: "Number of idle connections in the database pool",
		},
	)

	DBPoolAcquiredConns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_acquired_conns",
			Help: "Number of currently acquired connections in the database pool",
		},
	)
)
