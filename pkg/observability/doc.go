/*
Package observability exposes Prometheus metrics for the calculator.

Metrics are fed through domain.LifecycleHooks, so the calculator core never
imports Prometheus. Each Metrics value owns its registry, which keeps tests
and multiple servers in one process independent.
*/
package observability
