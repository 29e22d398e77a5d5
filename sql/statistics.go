package sql

// ColumnStatistics provides approximate distinct-value counts for columns,
// keyed by display alias.
type ColumnStatistics interface {
	// Cardinality returns the approximate number of distinct values of the
	// column with the given alias, and whether a value is known for it.
	Cardinality(alias string) (int, bool)
}

type mapStatistics map[string]int

func (m mapStatistics) Cardinality(alias string) (int, bool) {
	c, ok := m[alias]
	return c, ok
}

// StatisticsFromMap returns a ColumnStatistics backed by the given map.
func StatisticsFromMap(m map[string]int) ColumnStatistics {
	return mapStatistics(m)
}

// PlaceholderStatistics is a hard-coded cardinality table for the foodmart
// demo schema.
// TODO: remove once there is a real statistics provider to inject.
var PlaceholderStatistics = StatisticsFromMap(map[string]int{
	"brand_name":          111,
	"cases_per_pallet":    10,
	"customer_id":         5581,
	"day_of_month":        30,
	"fiscal_period":       0,
	"gross_weight":        376,
	"low_fat":             2,
	"month_of_year":       12,
	"net_weight":          332,
	"product_category":    45,
	"product_class_id":    102,
	"product_department":  22,
	"product_family":      3,
	"product_id":          1559,
	"product_name":        1559,
	"product_subcategory": 102,
	"promotion_id":        149,
	"quarter":             4,
	"recyclable_package":  2,
	"shelf_depth":         488,
	"shelf_height":        524,
	"shelf_width":         534,
	"SKU":                 1559,
	"SRP":                 315,
	"store_cost":          10777,
	"store_id":            13,
	"store_sales":         1049,
	"the_date":            323,
	"the_day":             7,
	"the_month":           12,
	"the_year":            1,
	"time_id":             323,
	"units_per_case":      36,
	"unit_sales":          6,
	"week_of_year":        52,
})
