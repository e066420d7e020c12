package text

// Metrics holds font metrics scaled to a face size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font,
	// stored as a positive value.
	Descent float64

	// LineGap is the recommended extra space between lines.
	LineGap float64
}

// LineHeight returns the distance between the baselines of two lines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// merge returns the metrics covering both m and o.
func (m Metrics) merge(o Metrics) Metrics {
	return Metrics{
		Ascent:  max(m.Ascent, o.Ascent),
		Descent: max(m.Descent, o.Descent),
		LineGap: max(m.LineGap, o.LineGap),
	}
}
