/*
Package registry is the single entry point to the co-signing pool and
the wallet policy state.

The registry owns the store and the full middleware stack. Every
mutating method wraps its parameters in the matching message, injects
the verified caller together with the registry authority into the
context and delivers the message through the decorated router. The
store is committed only when the handler succeeds, a failed operation
leaves no trace.

The registry performs no caller authentication itself. The embedding
wallet platform verifies identities and is trusted to invoke the
methods with legitimate caller addresses only. Downstream handlers
authorize against the injected caller set, so their wallet or registry
checks remain meaningful.

Besides the pass-through methods the registry exposes read accessors
over the latest committed state and the guard hook CheckTransaction,
the pre-execution checkpoint of the wallet platform.
*/
package registry
