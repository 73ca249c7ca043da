package selector

import "image"

// Command is a discrete keyboard adjustment of the selection.
type Command int

const (
	NoCommand Command = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	GrowTop
	GrowBottom
	GrowLeft
	GrowRight
	ShrinkTop
	ShrinkBottom
	ShrinkLeft
	ShrinkRight
	SelectAll
)

var commandNames = map[Command]string{
	MoveUp:       "move-up",
	MoveDown:     "move-down",
	MoveLeft:     "move-left",
	MoveRight:    "move-right",
	GrowTop:      "grow-top",
	GrowBottom:   "grow-bottom",
	GrowLeft:     "grow-left",
	GrowRight:    "grow-right",
	ShrinkTop:    "shrink-top",
	ShrinkBottom: "shrink-bottom",
	ShrinkLeft:   "shrink-left",
	ShrinkRight:  "shrink-right",
	SelectAll:    "select-all",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand resolves a command by its String name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return NoCommand, false
}

// adjust applies a one-pixel command to s within bounds and reports whether
// anything moved. SelectAll is handled by the Machine because it also
// changes state.
func adjust(s *Selection, cmd Command, bounds image.Point) bool {
	before := *s
	switch cmd {
	case MoveUp:
		if s.Y1 > 0 && s.Y2 > 0 {
			s.Y1--
			s.Y2--
		}
	case MoveDown:
		if s.Y1 < bounds.Y && s.Y2 < bounds.Y {
			s.Y1++
			s.Y2++
		}
	case MoveLeft:
		if s.X1 > 0 && s.X2 > 0 {
			s.X1--
			s.X2--
		}
	case MoveRight:
		if s.X1 < bounds.X && s.X2 < bounds.X {
			s.X1++
			s.X2++
		}
	case GrowTop:
		growLow(&s.Y1, &s.Y2)
	case GrowLeft:
		growLow(&s.X1, &s.X2)
	case GrowBottom:
		growHigh(&s.Y1, &s.Y2, bounds.Y)
	case GrowRight:
		growHigh(&s.X1, &s.X2, bounds.X)
	case ShrinkTop:
		shrinkLow(&s.Y1, &s.Y2)
	case ShrinkLeft:
		shrinkLow(&s.X1, &s.X2)
	case ShrinkBottom:
		shrinkHigh(&s.Y1, &s.Y2)
	case ShrinkRight:
		shrinkHigh(&s.X1, &s.X2)
	}
	return *s != before
}

// growLow pushes the smaller of a pair toward 0.
func growLow(a, b *int) {
	if *a < *b {
		*a = max(*a-1, 0)
		return
	}
	*b = max(*b-1, 0)
}

// growHigh pushes the larger of a pair toward bound.
func growHigh(a, b *int, bound int) {
	if *a > *b {
		*a = min(*a+1, bound)
		return
	}
	*b = min(*b+1, bound)
}

// shrinkLow pulls the smaller of a pair inward, never past the other.
func shrinkLow(a, b *int) {
	if *a < *b {
		*a = min(*a+1, *b)
		return
	}
	*b = min(*b+1, *a)
}

// shrinkHigh pulls the larger of a pair inward, never past the other.
func shrinkHigh(a, b *int) {
	if *a > *b {
		*a = max(*a-1, *b)
		return
	}
	*b = max(*b-1, *a)
}
