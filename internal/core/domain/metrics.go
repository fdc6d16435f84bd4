package domain

// Metrics holds the four engagement counters tracked per campaign. The same
// type carries targets and live counts.
type Metrics struct {
	Likes    uint64 `json:"likes"`
	Comments uint64 `json:"comments"`
	Views    uint64 `json:"views"`
	Shares   uint64 `json:"shares"`
}

var metricNames = [4]string{"likes", "comments", "views", "shares"}

func (m Metrics) values() [4]uint64 {
	return [4]uint64{m.Likes, m.Comments, m.Views, m.Shares}
}

// Any reports whether at least one counter is non-zero.
func (m Metrics) Any() bool {
	return m.Likes > 0 || m.Comments > 0 || m.Views > 0 || m.Shares > 0
}

// Max returns the largest counter.
func (m Metrics) Max() uint64 {
	var out uint64
	for _, v := range m.values() {
		out = max(out, v)
	}
	return out
}

// Regression returns the name of the first counter in next that is lower
// than the same counter in m.
func (m Metrics) Regression(next Metrics) (string, bool) {
	prev, cur := m.values(), next.values()
	for i := range prev {
		if cur[i] < prev[i] {
			return metricNames[i], true
		}
	}
	return "", false
}

// Reached reports whether every non-zero target in m is met by current.
func (m Metrics) Reached(current Metrics) bool {
	targets, cur := m.values(), current.values()
	for i, t := range targets {
		if t > 0 && cur[i] < t {
			return false
		}
	}
	return true
}
