// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// TasksCreatedTotal counts newly posted tasks.
// Label:
//   - category: the category name the task was posted under
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks posted, by category.",
	},
	[]string{"category"},
)

// ApplicationsSubmittedTotal counts applications submitted against open tasks.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of task applications submitted.",
	},
)

// ApplicationDecisionsTotal counts poster decisions on applications.
// Label:
//   - decision: "accepted" or "rejected"
var ApplicationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_decisions_total",
		Help:      "Total number of application decisions, by outcome.",
	},
	[]string{"decision"},
)

// AdminDeletionsTotal counts forced deletions performed through the admin
// surface.
// Label:
//   - entity: "task" or "user"
var AdminDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_deletions_total",
		Help:      "Total number of admin-forced deletions, by entity.",
	},
	[]string{"entity"},
)
