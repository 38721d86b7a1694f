package model

import "fmt"

// Query selects a collection read mode. It is implemented by Page and Box only.
type Query interface {
	isQuery()
	fmt.Stringer
}

// Page selects a window of the z-ordered widget sequence.
type Page struct {
	Skip int
	Take int
}

func (Page) isQuery() {}

// String implements fmt.Stringer.
func (p Page) String() string {
	return fmt.Sprintf("page(skip=%d,take=%d)", p.Skip, p.Take)
}

// DefaultPage is used when no query is given.
var DefaultPage = Page{Skip: 0, Take: DefaultTake}

// Box selects widgets whose bounding box lies entirely within
// [Left, Right] × [Lower, Upper].
type Box struct {
	Left  int32
	Right int32
	Upper int32
	Lower int32
}

func (Box) isQuery() {}

// String implements fmt.Stringer.
func (b Box) String() string {
	return fmt.Sprintf("box(left=%d,right=%d,upper=%d,lower=%d)", b.Left, b.Right, b.Upper, b.Lower)
}

// Contains reports whether w lies entirely inside the box.
func (b Box) Contains(w Widget) bool {
	return w.Left() >= b.Left && w.Right() <= b.Right && w.Upper() <= b.Upper && w.Lower() >= b.Lower
}
