/*
Package ports defines the contracts between the calculator service and its adapters.

Following Hexagonal Architecture, the service depends only on these interfaces:

  - Evaluator: computes an expression and returns the raw text it produced.
  - Journal: keeps a write-only history of finished calculations.

Concrete implementations live under pkg/adapters.
*/
package ports
