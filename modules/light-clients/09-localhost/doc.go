/*
Package localhost lets a chain open connections and channels to itself. Its
single client, 09-localhost, is always active and verifies membership directly
against the host commitment store at the current block height.
*/
package localhost
