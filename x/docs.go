/*
Package x contains the interfaces shared by the barter extensions.

Extensions implement common functionality (Handler, Decorator,
Initializer, etc.) and are combined together to construct an
application. Handlers receive an Authenticator in their constructor so
that the identity provider can be replaced without touching them.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `offer.CreateMsg` in place of `offer.CreateOfferMsg`.
*/
package x
