package timeline

// Result represents the query result containing the timeline, oldest message first.
type Result struct {
	Messages       []TimelineMessage
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event log when the timeline was built.
func (r Result) GetSequenceNumber() uint {
	return r.SequenceNumber
}
