// Package schema declares the column contracts of the three input tables.
//
// A contract lists the columns a table must provide and the scalar kind each
// cell is coerced to. Columns outside the contract are ignored by the
// pipeline; the coerce and clean stages operate only on contract columns.
package schema

// Cell kinds understood by the coerce transformer.
const (
	KindInt     = "int"
	KindDecimal = "decimal"
	KindString  = "string"
)

type Field struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // "int" | "decimal" | "string"
}

type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Columns returns the contract's column names in declaration order.
func (c Contract) Columns() []string {
	cols := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Products describes the product catalog table.
var Products = Contract{
	Name: "products",
	Fields: []Field{
		{Name: "product_id", Kind: KindInt},
		{Name: "category", Kind: KindString},
		{Name: "price", Kind: KindDecimal},
	},
}

// Purchases describes the purchase event table.
var Purchases = Contract{
	Name: "purchases",
	Fields: []Field{
		{Name: "purchase_id", Kind: KindInt},
		{Name: "user_id", Kind: KindInt},
		{Name: "product_id", Kind: KindInt},
		{Name: "quantity", Kind: KindInt},
	},
}

// Users describes the user table.
var Users = Contract{
	Name: "users",
	Fields: []Field{
		{Name: "user_id", Kind: KindInt},
		{Name: "age", Kind: KindInt},
	},
}
