package replay

// FrameInput is one change in a player's raw input stream. Direction
// uses the wire encoding; buttons are the button bitmask.
type FrameInput struct {
	F int   `json:"f"`
	D uint8 `json:"d,omitempty"`
	B uint8 `json:"b,omitempty"`
}

// Data is a recorded match: the total frame count and both players'
// input change streams, in frame order.
type Data struct {
	Version   string       `json:"version"`
	StartTime string       `json:"startTime"`
	Frames    int          `json:"frames"`
	P1        []FrameInput `json:"p1"`
	P2        []FrameInput `json:"p2"`
}
