package domain

// RatePair identifies a conversion direction: Quote units per one Base unit.
type RatePair struct {
	Base  string
	Quote string
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Base:  p.Quote,
		Quote: p.Base,
	}
}

func (p RatePair) String() string { return p.Base + "/" + p.Quote }
