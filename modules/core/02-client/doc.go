/*
Package client stores and updates the light clients a chain uses to track its
counterparties. Light client implementations are registered in a Router by
client type; the keeper only keeps the client type of each identifier and
commits keccak256 hashes of client and consensus states under their ICS 24
paths so that counterparties can prove them.
*/
package client
