/*
Package domain contains the core models of the calcgate request flow.

It defines what travels between the HTTP surface, the calculator service and the
evaluator adapters. The package has no I/O and no external dependencies.

# Key Entities

  - Outcome: the discriminated result returned to a caller (result or error).
  - Output: the raw text and exit status produced by one evaluator run.
  - Record: a journal entry describing a finished calculation.
  - EvaluationEvent: the observability payload emitted after each evaluator run.
*/
package domain
