package bitpast

// ScanState is the state of a scanner walking an image.
type ScanState int

// Scanner states.
const (
	StateIdle ScanState = iota
	StateScanning
	StateRowComplete
	StateDone
)

func (s ScanState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateRowComplete:
		return "row-complete"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// scanner yields pixel positions in dither order. With serpentine enabled
// even rows run left to right and odd rows right to left.
type scanner struct {
	width, height int
	serpentine    bool

	state ScanState
	x, y  int
	dir   int
}

func newScanner(width, height int, serpentine bool) *scanner {
	return &scanner{
		width:      width,
		height:     height,
		serpentine: serpentine,
		state:      StateIdle,
	}
}

func (s *scanner) rowDirection(y int) int {
	if s.serpentine && y%2 == 1 {
		return -1
	}
	return 1
}

func (s *scanner) startRow(y int) {
	s.y = y
	s.dir = s.rowDirection(y)
	if s.dir > 0 {
		s.x = 0
	} else {
		s.x = s.width - 1
	}
	s.state = StateScanning
}

// next advances to the next pixel and reports whether one exists. After it
// returns false the scanner is Done. rowEnd is true when the returned pixel
// is the last one of its row.
func (s *scanner) next() (x, y int, rowEnd bool, ok bool) {
	switch s.state {
	case StateDone:
		return 0, 0, false, false
	case StateIdle:
		if s.width <= 0 || s.height <= 0 {
			s.state = StateDone
			return 0, 0, false, false
		}
		s.startRow(0)
	case StateRowComplete:
		if s.y+1 >= s.height {
			s.state = StateDone
			return 0, 0, false, false
		}
		s.startRow(s.y + 1)
	case StateScanning:
		s.x += s.dir
	}

	x, y = s.x, s.y
	if (s.dir > 0 && x == s.width-1) || (s.dir < 0 && x == 0) {
		s.state = StateRowComplete
		rowEnd = true
	}
	return x, y, rowEnd, true
}
