package domain

// ChangeSet describes how a product collection differs from an earlier copy.
type ChangeSet struct {
	Added   []Product
	Removed []Product
	Updated []Product
}

// IsEmpty returns true if nothing was added, removed or updated.
func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.Updated) == 0
}

// Diff compares two collections by product id. Added and Updated follow the
// order of after; Removed follows the order of before. A pure reordering
// yields an empty ChangeSet.
func Diff(before, after []Product) ChangeSet {
	old := make(map[string]Product, len(before))
	for _, p := range before {
		old[p.id] = p
	}
	current := make(map[string]struct{}, len(after))

	var cs ChangeSet
	for _, p := range after {
		current[p.id] = struct{}{}
		prev, existed := old[p.id]
		switch {
		case !existed:
			cs.Added = append(cs.Added, p)
		case prev != p:
			cs.Updated = append(cs.Updated, p)
		}
	}
	for _, p := range before {
		if _, ok := current[p.id]; !ok {
			cs.Removed = append(cs.Removed, p)
		}
	}
	return cs
}
