package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger positions inside an Extension.
const (
	Index = iota
	Middle
	Ring
	Pinky
)

// fingerMCP maps Extension positions to the finger's MCP landmark index.
var fingerMCP = [4]int{
	Index:  detector.IndexMCP,
	Middle: detector.MiddleMCP,
	Ring:   detector.RingMCP,
	Pinky:  detector.PinkyMCP,
}

// Extension records which of the index, middle, ring and pinky fingers are
// extended. A finger is extended when its tip sits above (smaller Y than)
// its PIP joint, which assumes an upright hand.
type Extension [4]bool

// Extensions computes the Extension of a hand.
func Extensions(hand *detector.HandLandmarks) Extension {
	var ext Extension
	for i, mcp := range fingerMCP {
		ext[i] = hand.Tip(mcp).Y < hand.PIP(mcp).Y
	}
	return ext
}

// Count returns the number of extended fingers.
func (e Extension) Count() int {
	n := 0
	for _, up := range e {
		if up {
			n++
		}
	}
	return n
}

// Only reports whether exactly the given fingers are extended.
func (e Extension) Only(fingers ...int) bool {
	var want Extension
	for _, f := range fingers {
		want[f] = true
	}
	return e == want
}

// pose is the per-hand input every rule sees.
type pose struct {
	hand *detector.HandLandmarks
	ext  Extension
	n    int
}

func (p pose) thumbUp() bool {
	return p.hand.Points[detector.ThumbTip].Y < p.hand.Points[detector.ThumbIP].Y
}

// Rule maps a pose predicate to a letter.
type Rule struct {
	Name   string
	Letter rune
	match  func(p pose) bool
}

// rules are evaluated in order and the first match wins. Several predicates
// overlap (f and the index-only / two-finger shapes, e and f on the pinky),
// so the order is part of the behavior.
var rules = []Rule{
	{Name: "index", Letter: 'a', match: func(p pose) bool {
		return p.n == 1 && p.ext[Index]
	}},
	{Name: "index-middle", Letter: 'b', match: func(p pose) bool {
		return p.n == 2 && p.ext[Index] && p.ext[Middle]
	}},
	{Name: "index-middle-ring", Letter: 'c', match: func(p pose) bool {
		return p.n == 3 && p.ext[Index] && p.ext[Middle] && p.ext[Ring]
	}},
	{Name: "index-pinky", Letter: 'f', match: func(p pose) bool {
		return p.ext[Index] && !p.ext[Middle] && !p.ext[Ring] && p.ext[Pinky]
	}},
	{Name: "open-palm", Letter: 'd', match: func(p pose) bool {
		return p.n == 4
	}},
	{Name: "thumb-pinky", Letter: 'e', match: func(p pose) bool {
		return !p.ext[Index] && !p.ext[Middle] && !p.ext[Ring] && p.ext[Pinky] && p.thumbUp()
	}},
}

// Rules returns the letter rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ThumbsDown reports whether the thumb is folded downward and inward: the tip
// is below the IP joint and left of the MCP joint. Calibrated for a right
// hand with the palm toward the camera.
func ThumbsDown(hand *detector.HandLandmarks) bool {
	tip := hand.Points[detector.ThumbTip]
	return tip.Y > hand.Points[detector.ThumbIP].Y && tip.X < hand.Points[detector.ThumbMCP].X
}

// Classify maps a hand pose to a symbol. Thumbs down wins over every letter;
// otherwise the first matching rule decides and shift selects upper case.
// It returns None when nothing matches.
func Classify(hand detector.HandLandmarks, shift bool) Symbol {
	if ThumbsDown(&hand) {
		return Delete
	}

	ext := Extensions(&hand)
	p := pose{hand: &hand, ext: ext, n: ext.Count()}

	for _, r := range rules {
		if r.match(p) {
			return Letter(r.Letter, shift)
		}
	}
	return None
}
