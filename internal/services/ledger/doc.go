// Package ledger implements the wallet ledger engine: the single code path
// through which every wallet balance change passes.
//
// The package is organised around three layers:
//
//   - resolveWallet finds or lazily creates the wallet for a (user, currency)
//     pair inside the caller's database transaction, so every call site
//     shares one creation policy.
//
//   - debitWallet and creditWallet are the balance mutators. Each loads the
//     wallet under a row-level lock, applies the delta (debits enforce the
//     non-negative balance invariant), and records the paired transaction
//     row. A balance delta is never applied without its ledger entry and no
//     entry exists without an applied delta.
//
//   - Fund, Convert and Trade compose the mutators into user-facing
//     operations. Each runs in exactly one database transaction: the debit
//     leg is attempted before the credit leg, and any failure rolls both
//     back. Exchange-rate math is done on decimals and rounded to the
//     smallest currency unit only at the end.
//
// Activity events are published after commit, best-effort; a publish failure
// never affects the committed operation.
package ledger
