package domain

// ShipmentItem is one physical unit handed to the shipping calculator. The
// checkout engine emits one entry per unit, not per cart line, so the notice
// reports per-unit weights.
type ShipmentItem struct {
	Name     string
	WeightKg float64
}

// ShipmentLine is one rendered notice entry with the unit weight in grams.
type ShipmentLine struct {
	Name  string
	Grams int64
}

// ShipmentNotice is the calculator's result: one line per unit plus the total
// package weight in kilograms, rounded to one decimal. Rendering is the
// presentation layer's job.
type ShipmentNotice struct {
	Lines         []ShipmentLine
	TotalWeightKg float64
}
