// model/instrument.go
package model

// Instrument is reference data; the rental flow never mutates it.
type Instrument struct {
	ID      int64  `db:"id" json:"id"`
	Price   int64  `db:"price" json:"price"`
	Type    string `db:"type" json:"type"`
	Brand   string `db:"brand" json:"brand"`
	Quality string `db:"quality" json:"quality"`
}
