// Package ledgerbook implements a bookkeeping workbook: a set of editable
// ledger sheets from which aggregate sheets are derived.
//
// A workbook holds ledgers in tab order. Each ledger has a role:
//   - Bank: the register of a bank account in a single currency, named
//     after the bank and the currency ("HSBC-USD").
//   - NonBank, PayableDetail and Regular: free-form ledgers.
//   - Aggregate: a view recomputed from the bank ledgers.
//
// An aggregate view collects every bank row whose counter-account contains
// its subject filter, sorts them by date and projects their amount into one
// column per currency. Rows entered by hand in a view are kept across
// rebuilds, in the place the view's preserve mode gives them.
//
// Every ledger exposes two totals, one in its own currency and one in the
// home currency, derived from the exchange rates of the bank ledgers.
//
// This package serves as the engine of the `lbk` command-line tool.
package ledgerbook
