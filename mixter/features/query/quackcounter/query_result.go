package quackcounter

// QuackCount represents the query result.
type QuackCount struct {
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event log when the count was computed.
func (r QuackCount) GetSequenceNumber() uint {
	return r.SequenceNumber
}
