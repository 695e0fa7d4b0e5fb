// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package control is the control surface (C7, spec.md §4.7): health
// aggregation across the broker, graph, and vector subsystems, queue
// introspection and purge, and dead-letter inspection. It holds no
// business logic of its own — it is a thin read-mostly facade over C1-C3
// and the local dead-letter mirror, the same role rabbitmq_service.py's
// health_check/queue_info/purge trio plays in the original.
package control
