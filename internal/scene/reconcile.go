package scene

// Stats counts what a reconciliation did.
type Stats struct {
	Entered int
	Updated int
	Exited  int
}

// Reconcile makes the children of parent that carry class match keys.
// Existing children are matched by their data-key attribute. Missing keys are
// created with enter, every matched or created child is passed to update, and
// children whose key is no longer present are removed. Reconciled children end
// up after the other children, in keys order.
func Reconcile(parent *Node, class string, keys []string, enter func(key string, i int) *Node, update func(n *Node, key string, i int)) Stats {
	var stats Stats

	existing := make(map[string]*Node)
	others := make([]*Node, 0, len(parent.Children))
	for _, c := range parent.Children {
		if !c.HasClass(class) {
			others = append(others, c)
			continue
		}
		k, _ := c.Attr(AttrKey)
		if _, dup := existing[k]; dup {
			c.parent = nil
			stats.Exited++
			continue
		}
		existing[k] = c
	}

	matched := make([]*Node, 0, len(keys))
	used := make(map[string]bool, len(keys))
	for i, k := range keys {
		if used[k] {
			continue
		}
		used[k] = true

		n, ok := existing[k]
		if ok {
			stats.Updated++
		} else {
			n = enter(k, i)
			n.AddClass(class)
			n.SetAttr(AttrKey, k)
			stats.Entered++
		}
		n.parent = parent
		if update != nil {
			update(n, k, i)
		}
		matched = append(matched, n)
	}

	for k, n := range existing {
		if !used[k] {
			n.parent = nil
			stats.Exited++
		}
	}

	parent.Children = append(others, matched...)
	return stats
}
