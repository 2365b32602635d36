/*
Package trusted implements a per wallet registry of trusted contracts.

A wallet that wants to interact with a contract beyond plain transfers
must list the contract address here or in its address book. The
transaction guard admits a contract interaction only when the
destination is known through one of the two.

Unlike the address book, adding a contract that is already listed
updates its label in place.
*/
package trusted
