package engine

// activeState describes where the active segment sits in its lifecycle,
// as seen from the perspective of the next record about to be appended.
type activeState int

const (
	// stateFresh: nothing has been written to the segment yet.
	stateFresh activeState = iota
	// stateGrowing: the segment holds data and has room for the next record.
	stateGrowing
	// stateFull: appending the next record would exceed the rotation
	// threshold, so rotation must happen first.
	stateFull
)

func (s activeState) String() string {
	switch s {
	case stateFresh:
		return "fresh"
	case stateGrowing:
		return "growing"
	case stateFull:
		return "full"
	default:
		return "unknown"
	}
}

// classifyActiveState reports the active segment's state given its current
// write offset, the configured rotation threshold, and the encoded length
// of the record about to be appended.
func classifyActiveState(writeOff, threshold uint64, nextRecordLen int) activeState {
	if writeOff == 0 {
		return stateFresh
	}
	if writeOff+uint64(nextRecordLen) > threshold {
		return stateFull
	}
	return stateGrowing
}
