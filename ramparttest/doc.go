/*
Package ramparttest provides mocks and helpers for testing code built on
rampart interfaces.

Mocks declared by this package are intended to be a drop in replacement for
the real implementations. They count their calls and can be programmed to
return errors, so tests can assert both the routing and the failure paths of
a handler stack.
*/
package ramparttest
