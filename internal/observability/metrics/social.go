package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FollowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "follows_total",
			Help: "Total number of follow edges created",
		},
	)

	UnfollowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unfollows_total",
			Help: "Total number of unfollow requests that succeeded",
		},
	)

	ProfileUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_updates_total",
			Help: "Total number of profile field updates",
		},
		[]string{"field"},
	)

	ArticlesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_created_total",
			Help: "Total number of articles created",
		},
	)

	ArticlesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_updated_total",
			Help: "Total number of articles updated",
		},
	)
)
