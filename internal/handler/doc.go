// Package handler implements the HTTP API of the family network explorer.
//
// ExplorerHandler serves the derived graph, the facet option lists, the
// category legend, node detail, renderer positions, reload and the dataset
// import/export endpoints. Errors are returned as JSON with an
// {error, details} body; service errors are mapped to status codes with
// errors.Is.
//
// Recover and CORS are plain middleware; Logger adds request logging with
// Prometheus metrics. Chain composes them around a ServeMux.
package handler
