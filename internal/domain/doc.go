// Package domain defines the entities, enums, and error taxonomy shared
// across the graph store, vector store, broker, admission, projector, and
// orchestrator packages. It has no dependency on any of those packages, so
// it can sit at the bottom of the import graph the way the teacher's
// recommend.types.go sits underneath its engine.
package domain
