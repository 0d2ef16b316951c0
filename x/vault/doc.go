/*
Package vault keeps custody of assets on behalf of addresses.

Every address owns a list of holdings, kept sorted by ticker and nonce,
with the quantity of each (ticker, nonce) pair summed up. Assets can be
created at genesis, moved between addresses by other extensions through
the Controller, or transferred by their owner with a SendMsg.

Any condition address can hold assets. This allows extensions such as
offer to lock deposits under an address that only their own code can
move.
*/
package vault
