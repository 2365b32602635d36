/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package persists a single configuration entity under its own name.
Configurations can be seeded from the registry construction options and
updated at runtime through an update message gated by the configuration
owner.
*/
package gconf
