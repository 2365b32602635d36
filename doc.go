/*
Package rampart defines the common interfaces that tie the co-signing
pool and the policy guard together: addresses and conditions, messages
and transactions, handlers and decorators, results, and the key-value
store contracts every component persists through.

The root package holds only the vocabulary. Behavior lives in the
extension packages under x/ and is composed by the registry package,
which is what embedding wallet platforms use directly.
*/
package rampart
