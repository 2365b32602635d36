/*
Package delegation implements per wallet delegatecall policies.

A delegatecall runs foreign code with full authority over the calling
wallet, so it is forbidden unless a wallet explicitly opts in. A policy
can additionally pin the set of allowed target contracts. An empty
target set means any target is acceptable once delegation is enabled.

Policies start disabled. Adding a target does not enable delegation by
itself.
*/
package delegation
