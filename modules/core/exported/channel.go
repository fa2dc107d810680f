package exported

// Acknowledgement defines the interface used to return acknowledgements in the OnRecvPacket callback.
// The Acknowledgement interface is used by core IBC to ensure partial state changes are not committed
// when packet receives have not properly succeeded (typically resulting in an error acknowledgement being returned).
// The interface also allows core IBC to obtain the bytes written to the acknowledgement commitment.
type Acknowledgement interface {
	Success() bool
	Acknowledgement() []byte
}
