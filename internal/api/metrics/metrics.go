// Package metrics defines all custom Prometheus metrics for the messaging
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messaging"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the authentication gate.
// Label:
//   - reason: "missing_header", "invalid_token", "wrong_type", "unknown_user", "not_admin"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// UsersCreatedTotal counts created accounts by role.
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// GroupsCreatedTotal counts created groups.
var GroupsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "groups_created_total",
		Help:      "Total number of groups created.",
	},
)

// MessagesSentTotal counts messages accepted into groups.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages sent.",
	},
)

// MembershipChangesTotal counts membership mutations.
// Label:
//   - action: "add" or "remove"
var MembershipChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "membership_changes_total",
		Help:      "Total number of membership additions and removals.",
	},
	[]string{"action"},
)

// LikesTotal counts like mutations.
// Label:
//   - action: "like" or "unlike"
var LikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of like and unlike operations.",
	},
	[]string{"action"},
)
