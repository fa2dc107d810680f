/*
Package mock implements the 00-mock light client. It tracks a counterparty
chain by trusting the headers it is given and answers membership queries by
reading the counterparty's commitment map directly. It is intended for tests
and development networks only.
*/
package mock
