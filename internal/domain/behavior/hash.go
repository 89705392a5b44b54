package behavior

import "hash/fnv"

// TreeHash fingerprints a tree's shape and leaf names, ignoring the
// optional diagnostic index nodes may carry, so a tree rebuilt from the
// same action library hashes identically regardless of how it was indexed.
func TreeHash(node Node) uint64 {
	h := fnv.New64a()
	writeNode(h, node)
	return h.Sum64()
}

func writeNode(h interface{ Write([]byte) (int, error) }, node Node) {
	if node == nil {
		h.Write([]byte("nil;"))
		return
	}
	h.Write([]byte(node.kind()))
	h.Write([]byte{';'})

	switch n := node.(type) {
	case *InvertNode:
		writeNode(h, n.Child)
	case *SelectNode:
		for _, c := range n.Children {
			writeNode(h, c)
		}
	case *SequenceNode:
		for _, c := range n.Children {
			writeNode(h, c)
		}
	case *WhileNode:
		writeNode(h, n.Condition)
		writeNode(h, n.Body)
	}
}
