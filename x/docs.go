/*
Package x contains the extensions that make up the registry

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct the application.

All sub-packages are various extensions, useful to build the
co-signing pool and the policy guard, but not necessary to use
the framework. If they don't match your particular needs, you
may also write your own extensions and use them instead.
*/
package x
