package geometry

// ValidateRing returns an error describing why cs is not a valid linear
// ring, or nil. An empty ring is valid.
func ValidateRing(cs []Coordinate) error {
	if len(cs) == 0 {
		return nil
	}
	for i, c := range cs {
		if !c.IsValid() {
			return InvalidArgument("ring coordinate %d (%s) is not finite", i, c)
		}
	}
	if len(cs) < 4 {
		return InvalidArgument("ring has %d coordinates, at least 4 are required", len(cs))
	}
	if !cs[0].Equal(cs[len(cs)-1]) {
		return InvalidArgument("ring is not closed")
	}
	if !IsSimpleCurve(cs) {
		return InvalidArgument("ring intersects itself")
	}
	if SignedArea(cs) == 0 {
		return InvalidArgument("ring has no area")
	}
	return nil
}

// ValidatePolygon returns an error describing why the polygon made of shell
// and holes is not valid, or nil. The shell has to be a counter-clockwise
// ring; holes can have either orientation but must lie inside the shell
// without crossing it or each other.
func ValidatePolygon(shell []Coordinate, holes [][]Coordinate) error {
	if len(shell) == 0 {
		if len(holes) > 0 {
			return InvalidArgument("polygon with an empty shell has holes")
		}
		return nil
	}
	if err := ValidateRing(shell); err != nil {
		return err
	}
	if RingOrientation(shell) != CounterClockwise {
		return InvalidArgument("shell is not counter-clockwise")
	}

	for i, h := range holes {
		if len(h) == 0 {
			return InvalidArgument("hole %d is empty", i)
		}
		if err := ValidateRing(h); err != nil {
			return InvalidArgument("hole %d: %v", i, err)
		}
		if !ringInside(h, shell) {
			return InvalidArgument("hole %d is not inside the shell", i)
		}
		if ringsInteract(h, shell) {
			return InvalidArgument("hole %d crosses the shell", i)
		}
		for j := 0; j < i; j++ {
			if ringsInteract(h, holes[j]) {
				return InvalidArgument("hole %d crosses hole %d", i, j)
			}
			if ringOverlaps(h, holes[j]) || ringOverlaps(holes[j], h) {
				return InvalidArgument("hole %d overlaps hole %d", i, j)
			}
		}
	}
	return nil
}

// ringInside reports whether no vertex of inner lies outside outer and
// inner reaches into the interior of outer.
func ringInside(inner, outer []Coordinate) bool {
	interior := false
	for _, c := range inner {
		switch LocateInRing(c, outer) {
		case Exterior:
			return false
		case Interior:
			interior = true
		}
	}
	if interior {
		return true
	}
	return LocateInRing(inner[0].Add(inner[1]).Scale(0.5), outer) == Interior
}

// ringOverlaps reports whether a reaches into the interior of b.
func ringOverlaps(a, b []Coordinate) bool {
	for _, c := range a {
		if LocateInRing(c, b) == Interior {
			return true
		}
	}
	for i := 1; i < len(a); i++ {
		if LocateInRing(a[i-1].Add(a[i]).Scale(0.5), b) == Interior {
			return true
		}
	}
	return false
}

// ringsInteract reports whether a segment of a properly crosses or runs
// along a segment of b. Touching in single points is allowed.
func ringsInteract(a, b []Coordinate) bool {
	ea, eb := EnvelopeOf(a...), EnvelopeOf(b...)
	if !ea.Intersects(eb) {
		return false
	}
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentsCross(a[i-1], a[i], b[j-1], b[j]) ||
				segmentsOverlap(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}
