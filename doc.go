// Package recon implements a three-way trade reconciliation between an
// Investment Manager, a Custodian and a Clearing House.
//
// The processing is a linear pipeline of pure functions:
//   - Ingest: delimited (comma, pipe or tab) or JSON source files are parsed
//     into [Record]s, validated for a TradeID and an Amount column.
//   - Match: every TradeID of the union of the three sources is classified as
//     Matched, Mismatch or Orphan, producing a [Report] with a [Summary] and the
//     list of [Break]s needing review.
//   - Report: breaks are filtered by type and TradeID and exported as CSV.
//
// A [Workspace] holds the state of a session (one slot per source) as an
// immutable value, so that the presentation layers (the `rcs` command line
// tool and its HTTP server) keep the only mutable reference.
//
// Amounts are exact decimals and compare strictly: there is no tolerance, and
// an amount that cannot be read never matches.
package recon
