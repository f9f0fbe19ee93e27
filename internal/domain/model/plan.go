package model

// Plan is the output of one reconciliation planning step. The three lists
// are disjoint: a SKU never appears in more than one of them.
type Plan struct {
	ToCreate []PlannedCreate
	ToUpdate []PlannedUpdate
	ToDelete []PlannedDelete

	// SkippedNoPrice lists normalized SKUs that cannot be published or
	// refreshed because the ERP has no price row for them.
	SkippedNoPrice []string
	// SkippedNoSKU counts storefront records without a SKU; they are
	// excluded from matching and from deletion.
	SkippedNoSKU int
	// Unchanged counts matched records whose fields are already in sync;
	// no write is issued for them.
	Unchanged int
}

type PlannedCreate struct {
	SKU     string
	Product Product
	Stock   int
	Price   PriceEntry
}

type PlannedUpdate struct {
	SKU     string
	WooID   int64
	Product Product
	Stock   int
	Price   PriceEntry
	// Changes describes the fields that differ, e.g. "stock: 5 -> 8".
	Changes []string
}

type PlannedDelete struct {
	SKU   string
	WooID int64
}
