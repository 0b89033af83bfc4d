package eventstore

// MaxSequenceNumberUint is a type alias for uint, representing the highest sequence number assigned by an event log.
type MaxSequenceNumberUint = uint
