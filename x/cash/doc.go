/*
Package cash is the token ledger.

Every address owns a wallet holding coins of any number of tickers. The
Controller exposes the ledger operations other extensions build on: balance
lookup, an atomic move between two wallets and minting new coins into a
wallet. A failed operation never leaves a partially updated wallet behind.
*/
package cash
