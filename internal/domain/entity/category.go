package entity

import "time"

// Category is the one self-referential entity in the catalog: a node may
// reference a parent of the same type. The tree is stored by parent pointer
// only; ancestor and descendant views are derived by bounded traversal, and
// the acyclic invariant is enforced on every mutation of ParentID.
//
// Parent and Children are populated only when the source record had them
// attached; an absent relation is not an error.
type Category struct {
	ID       uint
	Name     string
	ParentID *uint      // Nil for a top-level category.
	Parent   *Category  // Resolved parent, when loaded.
	Children []Category // Direct children, when loaded; never nil after mapping.
	Products []Product  // Products filed under this category, when loaded.
	ShopID   *uint      // Owning shop; nil for marketplace-wide categories.
	Shop     *Shop      // Resolved shop, when loaded.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
