package domain

// Product is a scraped catalog listing. Identity is the (title, source)
// pair; the same title from two sources are distinct rows.
type Product struct {
	Title        string  `db:"title"`
	TotalPrice   float64 `db:"total_price"`
	PricePerUnit float64 `db:"price_per_unit"`
	Unit         string  `db:"unit"`
	Availability string  `db:"availability"`
	Source       string  `db:"source"`
	Link         *string `db:"link"`
}

// UnknownUnit marks rows the scraper could not parse a unit for; search
// results exclude them.
const UnknownUnit = "unknown"
