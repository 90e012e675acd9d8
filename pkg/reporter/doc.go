// Package reporter provides suite.Reporter implementations: an indented
// terminal log, a JSON document, a go-pretty summary table, a bubbletea live
// display and Prometheus metrics. Combine them with suite.Multi.
package reporter
