package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStartedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dungeon_master_games_started_total",
		Help: "Number of games that completed setup.",
	}, []string{"variant"})

	gamesFinishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dungeon_master_games_finished_total",
		Help: "Number of finished games by outcome.",
	}, []string{"variant", "outcome"})

	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dungeon_master_turns_total",
		Help: "Number of successful turns by kind.",
	}, []string{"variant", "kind"})
)
