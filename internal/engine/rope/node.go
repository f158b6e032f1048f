package rope

import "strings"

// Tree structure constants.
const (
	// MinChildren is the minimum children per internal node (except root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node in the rope B+ tree. Leaf nodes (height 0) hold text chunks;
// internal nodes hold children plus cached per-child summaries so seeks can
// pick the right child without descending.
type Node struct {
	height  uint8
	summary TextSummary

	// internal nodes (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// leaf nodes (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{
		height: 0,
		chunks: make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	total := TextSummary{Flags: FlagASCII}
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf reports whether this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of text in this subtree.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

func (n *Node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo writes all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange extracts the text in the byte range [start, end).
func (n *Node) textInRange(start, end ByteOffset) string {
	if start >= end || start >= n.Len() {
		return ""
	}
	if end > n.Len() {
		end = n.Len()
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	n.appendRange(&sb, start, end)
	return sb.String()
}

func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := ByteOffset(0)
		for _, chunk := range n.chunks {
			chunkEnd := offset + ByteOffset(chunk.Len())
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			lo := 0
			if start > offset {
				lo = int(start - offset)
			}
			hi := chunk.Len()
			if end < chunkEnd {
				hi = int(end - offset)
			}
			sb.WriteString(chunk.String()[lo:hi])
			offset = chunkEnd
		}
		return
	}

	offset := ByteOffset(0)
	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Bytes
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := ByteOffset(0)
		if start > offset {
			childStart = start - offset
		}
		childStop := n.childSummaries[i].Bytes
		if end < childEnd {
			childStop = end - offset
		}
		child.appendRange(sb, childStart, childStop)
		offset = childEnd
	}
}

// split divides the subtree at a byte offset: left holds [0, offset), right
// holds [offset, end).
func (n *Node) split(offset ByteOffset) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}

	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset ByteOffset) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	at := ByteOffset(0)

	for _, chunk := range n.chunks {
		chunkLen := ByteOffset(chunk.Len())
		switch {
		case at+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case at >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(int(offset - at))
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		at += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *Node) splitInternal(offset ByteOffset) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	at := ByteOffset(0)

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case at+childLen <= offset:
			leftChildren = append(leftChildren, child)
		case at >= offset:
			rightChildren = append(rightChildren, child)
		default:
			left, right := child.split(offset - at)
			if left.Len() > 0 {
				leftChildren = append(leftChildren, left)
			}
			if right.Len() > 0 {
				rightChildren = append(rightChildren, right)
			}
		}
		at += childLen
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren assembles a balanced tree over a list of same-height
// children. Children are distributed evenly across parents so no internal
// node ends up with fewer than two children.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	numParents := (len(children) + MaxChildren - 1) / MaxChildren
	base := len(children) / numParents
	extra := len(children) % numParents

	parents := make([]*Node, 0, numParents)
	idx := 0
	for i := 0; i < numParents; i++ {
		size := base
		if i < extra {
			size++
		}
		parents = append(parents, newInternalNode(children[idx:idx+size:idx+size]))
		idx += size
	}
	return buildNodeFromChildren(parents)
}

// concat joins two subtrees. The shorter side is folded into the taller
// side's spine rather than wrapped in single-child parents, so repeated
// appends keep the tree at O(log n) height.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	switch {
	case left.height == right.height:
		if left.IsLeaf() {
			return concatLeaves(left, right)
		}
		return mergeChildren(left.children, right.children)

	case left.height > right.height:
		// Join right onto the rightmost spine of left.
		last := len(left.children) - 1
		sub := concat(left.children[last], right)
		return spliceChild(left, last, sub)

	default:
		// Join left onto the leftmost spine of right.
		sub := concat(left, right.children[0])
		return spliceChild(right, 0, sub)
	}
}

// spliceChild replaces child idx of n with sub, absorbing sub's children when
// the concat grew it to n's own height.
func spliceChild(n *Node, idx int, sub *Node) *Node {
	children := make([]*Node, 0, len(n.children)+MaxChildren)
	children = append(children, n.children[:idx]...)
	if sub.height == n.height {
		children = append(children, sub.children...)
	} else {
		children = append(children, sub)
	}
	children = append(children, n.children[idx+1:]...)
	return mergeChildren(children, nil)
}

// concatLeaves joins two leaves, merging the boundary chunks when they fit in
// one so that single-character appends do not accumulate tiny chunks.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	for _, c := range right.chunks {
		if n := len(chunks); n > 0 && chunks[n-1].Len()+c.Len() <= MaxChunkSize {
			merged := chunks[n-1].Append(c)
			chunks = append(chunks[:n-1], merged...)
			continue
		}
		chunks = append(chunks, c)
	}

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	mid := (len(chunks) + 1) / 2
	return newInternalNode([]*Node{
		newLeafNodeWithChunks(chunks[:mid:mid]),
		newLeafNodeWithChunks(chunks[mid:]),
	})
}

// mergeChildren builds a node over two runs of same-height children,
// splitting once when the combined count exceeds MaxChildren.
func mergeChildren(a, b []*Node) *Node {
	all := make([]*Node, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)

	if len(all) == 1 {
		return all[0]
	}
	if len(all) <= MaxChildren {
		return newInternalNode(all)
	}
	return buildNodeFromChildren(all)
}

// findChildByOffset returns the index of the child containing the byte offset
// and the offset relative to that child.
func (n *Node) findChildByOffset(offset ByteOffset) (int, ByteOffset) {
	if n.IsLeaf() {
		return -1, 0
	}

	at := ByteOffset(0)
	for i, summary := range n.childSummaries {
		if at+summary.Bytes > offset {
			return i, offset - at
		}
		at += summary.Bytes
	}

	last := len(n.children) - 1
	return last, offset - (n.summary.Bytes - n.childSummaries[last].Bytes)
}

// findChildByChar returns the index of the child containing the nth character
// and the character index relative to that child.
func (n *Node) findChildByChar(char int64) (int, int64) {
	if n.IsLeaf() {
		return -1, 0
	}

	at := int64(0)
	for i, summary := range n.childSummaries {
		if at+summary.Chars > char {
			return i, char - at
		}
		at += summary.Chars
	}

	last := len(n.children) - 1
	return last, char - (n.summary.Chars - n.childSummaries[last].Chars)
}

// findChildByLine returns the index of the child whose span contains the start
// of the given line, and the line number relative to that child.
func (n *Node) findChildByLine(line uint32) (int, uint32) {
	if n.IsLeaf() {
		return -1, 0
	}

	at := uint32(0)
	for i, summary := range n.childSummaries {
		if at+summary.Lines >= line {
			return i, line - at
		}
		at += summary.Lines
	}

	last := len(n.children) - 1
	return last, line - (n.summary.Lines - n.childSummaries[last].Lines)
}
