package core

// GroupTotal is a value summed over one group.
type GroupTotal struct {
	Key   string
	Value float64
}

// Aggregate is an ordered sequence of group totals.
type Aggregate []GroupTotal

// Totals holds the summary metrics of a table.
type Totals struct {
	Sales  float64
	Profit float64
}

// Sum returns the sum of all group values.
func (a Aggregate) Sum() float64 {
	var total float64
	for _, g := range a {
		total += g.Value
	}
	return total
}

// Keys returns the group keys in order.
func (a Aggregate) Keys() []string {
	keys := make([]string, len(a))
	for i, g := range a {
		keys[i] = g.Key
	}
	return keys
}
