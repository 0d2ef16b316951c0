/*
Package offer implements a registry of peer to peer asset swap offers.

A creator deposits a non fungible asset and states the exact asset it is
willing to take in return. The deposit is held by an address derived from the
offer id until the creator cancels the offer or anyone pays the requested
asset, at which point both assets change hands in a single transaction.

Every active offer is indexed by its creator and by the counterparty it was
made for. The counterparty is informational only and does not restrict who
may accept the offer.
*/
package offer
