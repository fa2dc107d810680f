/*
Package connection runs the four step connection handshake between two chains.
Each ConnectionEnd is bound to a light client of the counterparty, and every
handshake step verifies the counterparty's committed connection end through
that client before advancing the local state.
*/
package connection
