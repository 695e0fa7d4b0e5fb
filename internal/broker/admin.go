// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package broker

import (
	"github.com/orbitlane/recoengine/internal/domain"
)

// QueueInfo is the result of Broker.QueueInfo.
type QueueInfo struct {
	Messages  int
	Consumers int
}

// QueueInfo inspects a queue's depth and consumer count (§4.3).
func (b *Broker) QueueInfo(name string) (QueueInfo, error) {
	ch, err := b.ensureChannel()
	if err != nil {
		return QueueInfo{}, domain.NewError(domain.KindBackendUnavailable, "broker.QueueInfo", err)
	}
	q, err := ch.QueueInspect(name)
	if err != nil {
		return QueueInfo{}, domain.NewError(domain.KindBackendFailure, "broker.QueueInfo", err)
	}
	return QueueInfo{Messages: q.Messages, Consumers: q.Consumers}, nil
}

// Purge empties a queue and returns the number of messages removed.
func (b *Broker) Purge(name string) (int, error) {
	ch, err := b.ensureChannel()
	if err != nil {
		return 0, domain.NewError(domain.KindBackendUnavailable, "broker.Purge", err)
	}
	n, err := ch.QueuePurge(name, false)
	if err != nil {
		return 0, domain.NewError(domain.KindBackendFailure, "broker.Purge", err)
	}
	return n, nil
}

// Health is the result of Broker.Health.
type Health struct {
	Status string
	Host   string
	Port   int
	Queues map[string]QueueInfo
}

// Health reports connection status, address, and a snapshot of every
// topology queue's depth.
func (b *Broker) Health() Health {
	h := Health{Host: b.cfg.Host, Port: b.cfg.Port, Queues: make(map[string]QueueInfo)}

	if b.conn == nil || b.conn.IsClosed() {
		h.Status = "down"
		return h
	}
	h.Status = "up"

	for _, q := range append(append([]string{}, PrimaryQueues...), QueueDLQ) {
		if info, err := b.QueueInfo(q); err == nil {
			h.Queues[q] = info
		}
	}
	return h
}
