// Package catalog turns caller filter and sort intent into a bounded read
// description over the product table. It never touches storage itself.
package catalog

import "strings"

// SortKey names a supported ordering.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortLatest    SortKey = "latest"
	SortLowToHigh SortKey = "lowToHigh"
	SortHighToLow SortKey = "highToLow"
)

// Direction of an ordering.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Field identifies a product column the composer may reference.
type Field string

const (
	FieldID          Field = "id"
	FieldSlug        Field = "slug"
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldCategory    Field = "category"
	FieldCollection  Field = "collection"
	FieldDescription Field = "description"
	FieldImage       Field = "image"
	FieldImageType   Field = "image_type"
	FieldSellerID    Field = "seller_id"
	FieldSaleCount   Field = "sale_count"
	FieldFeatured    Field = "featured"
	FieldCreatedAt   Field = "created_at"
	FieldUpdatedAt   Field = "updated_at"
)

// ListProjection is what list views return. Description and timestamps stay out.
var ListProjection = []Field{
	FieldID, FieldSlug, FieldName, FieldPrice, FieldCategory, FieldCollection,
	FieldImage, FieldImageType, FieldSellerID, FieldSaleCount, FieldFeatured,
}

// DetailProjection is the full record, used only for single-item reads.
var DetailProjection = []Field{
	FieldID, FieldSlug, FieldName, FieldPrice, FieldCategory, FieldCollection,
	FieldDescription, FieldImage, FieldImageType, FieldSellerID, FieldSaleCount,
	FieldFeatured, FieldCreatedAt, FieldUpdatedAt,
}

const namedListLimit = 10

// Filter restricts which products match. Zero value matches everything.
type Filter struct {
	Categories []string
	Collection string
	Featured   bool
}

// Order is a single-field ordering. A zero Order means natural storage order.
type Order struct {
	Field     Field
	Direction Direction
}

// IsZero reports whether no ordering was requested.
func (o Order) IsZero() bool {
	return o.Field == ""
}

// Query is the composed filter, order and projection triple plus an optional bound.
type Query struct {
	Name       string
	Filter     Filter
	Order      Order
	Projection []Field
	Limit      uint64
}

var sortOrders = map[SortKey]Order{
	SortPopular:   {Field: FieldSaleCount, Direction: Desc},
	SortLatest:    {Field: FieldCreatedAt, Direction: Desc},
	SortLowToHigh: {Field: FieldPrice, Direction: Asc},
	SortHighToLow: {Field: FieldPrice, Direction: Desc},
}

// OrderFor maps a sort key to its ordering. Unknown or empty keys yield the
// zero Order.
func OrderFor(key string) Order {
	return sortOrders[SortKey(strings.TrimSpace(key))]
}

// Compose builds a list query from caller intent.
func Compose(categories []string, sort string) Query {
	return Query{
		Filter:     Filter{Categories: normalizeCategories(categories)},
		Order:      OrderFor(sort),
		Projection: ListProjection,
	}
}

// All lists every product in natural order.
func All() Query {
	return Query{Name: "all", Projection: ListProjection}
}

// Featured lists products flagged as featured.
func Featured() Query {
	return Query{Name: "featured", Filter: Filter{Featured: true}, Projection: ListProjection}
}

// TopSelling lists the best sellers.
func TopSelling() Query {
	return Query{Name: "top-selling", Order: sortOrders[SortPopular], Projection: ListProjection, Limit: namedListLimit}
}

// Latest lists the newest products.
func Latest() Query {
	return Query{Name: "latest", Order: sortOrders[SortLatest], Projection: ListProjection, Limit: namedListLimit}
}

// ByCollection lists products tagged with the given collection.
func ByCollection(name string) Query {
	return Query{Filter: Filter{Collection: strings.TrimSpace(name)}, Projection: ListProjection}
}

// ByCategory lists products in a single category.
func ByCategory(name string) Query {
	return Compose([]string{name}, "")
}

// Cacheable reports whether the query is a fixed named list safe to cache.
func (q Query) Cacheable() bool {
	return q.Name != ""
}

// NamedLists returns the names of every cacheable list.
func NamedLists() []string {
	return []string{All().Name, Featured().Name, TopSelling().Name, Latest().Name}
}

func normalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
