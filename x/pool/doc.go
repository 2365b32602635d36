/*
Package pool implements the co-signing pool, the shared staging area
where multi signature wallet transactions and messages live between
proposal and execution.

A pending item is identified by its wallet and content hash. Proposing
assigns a fresh item ID from a per hash counter, signing appends
approval evidence in arrival order, and an item leaves the pool in
exactly one of three ways: marked executed (archived), deleted by its
proposer, or pruned in an explicit batch.

The pool keeps bookkeeping only. It never verifies signature bytes and
never decides whether a threshold is met. Both stay with the wallet.
*/
package pool
