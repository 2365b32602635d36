/*
Package addrbook implements a per wallet address book.

Entries name the destinations a wallet is willing to send funds or
tokens to. The transaction guard consults the book before admitting a
transfer, so adding an address here is what makes it a valid payment
destination.

Entries can be managed by the wallet itself or by the registry owner
configured for this package.
*/
package addrbook
