/*
Package guard decides whether a wallet transaction may execute.

Every transaction is first classified into one of five kinds by pure
payload inspection and then validated against the wallet's lists: the
address book for payees, the trusted contract registry for contract
interactions and the delegation policy for delegate calls. Validation
fails closed. A destination that is on no list is rejected, never
waved through.

The package never writes to the store. The wallet platform calls the
check through the registry guard hook right before execution and must
not execute when an error is returned.
*/
package guard
