// Package sink publishes analysis outcomes to downstream consumers.
//
// The Kafka sink is optional; when disabled the runtime wires Noop. Sink
// failures are logged by the caller and never affect task processing.
package sink
