// Package web serves the read-only HTML catalog.
//
// Pages are rendered from embedded html/template files. Every page carries a
// navigation block listing all systems, the devices of the selected system
// and the model numbers that parts of the selected device fit. Part
// descriptions are sanitized before rendering. The handler also exposes
// /healthz and Prometheus metrics at /metrics.
package web
