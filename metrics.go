package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	roomsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spysherlock_rooms_created_total",
			Help: "Total rooms created",
		},
	)
	gamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spysherlock_games_started_total",
			Help: "Total games started",
		},
	)
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "spysherlock_websocket_connections",
			Help: "Currently open websocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(roomsCreated)
	prometheus.MustRegister(gamesStarted)
	prometheus.MustRegister(wsConnections)
}
