// Package service implements the application logic of the Dynasty explorer.
//
// # ExplorerService
//
// ExplorerService owns the current Snapshot (dataset, canonical graph, facet
// lists) and serves derived graphs from it through a FilterCache. Handlers
// read concurrently; loads replace the snapshot atomically.
//
// # Loads
//
// Every Reload or Import starts a new generation and cancels the load in
// flight. A load applies its result only while its generation is current and
// the service is open, so a slow fetch can never overwrite a newer dataset
// or touch a closed service. A failed load leaves an empty graph and the
// failed state; the process keeps serving.
//
// # Renderer Positions
//
// The renderer may report node positions. They are kept per dataset in an
// overlay applied to derived graphs and dropped when a new dataset is
// applied. Ids, links and classification are never affected.
//
// # Event System
//
// Loads and position updates are published on the EventBus and forwarded
// to browsers over Server-Sent Events.
package service
