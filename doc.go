/*
Package barter defines the interfaces used throughout the offer registry
node: storage, transactions, handlers, decorators, queries, conditions and
addresses.

Extensions (see the x directory) build on these to implement message
handlers, while the app package wires them into an engine that executes one
transaction at a time.
*/
package barter
