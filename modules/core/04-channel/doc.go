/*
Package channel holds channel ends and the packet lifecycle on top of open
connections. A channel links an application port on each chain; packets sent
over it are committed by the sender, received at most once (and in order on
ORDERED channels) by the destination, and settled on the sender by either an
acknowledgement or a timeout.
*/
package channel
