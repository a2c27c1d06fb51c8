package document

// NodeKind identifies the role of a node in the document tree.
type NodeKind uint8

const (
	// KindElement is a structural node (paragraph, heading, list item).
	// Elements carry no text of their own.
	KindElement NodeKind = iota

	// KindText is a leaf node carrying a contiguous run of text content.
	KindText
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is a node in the document's structural tree.
// Text nodes are leaves; element nodes carry children.
type Node struct {
	// Kind is the node's role in the tree.
	Kind NodeKind

	// Tag names the structural element (e.g. "p", "h1"). Empty for text nodes.
	Tag string

	// Text is the text content for KindText nodes. Ignored for elements.
	Text string

	// Children are the ordered child nodes. Nil for text nodes.
	Children []*Node
}

// NewElement creates a structural node with the given tag and children.
func NewElement(tag string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Children: children}
}

// NewText creates a leaf text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// IsText returns true if the node is a leaf text fragment.
func (n *Node) IsText() bool {
	return n.Kind == KindText
}

// Length returns the character count of a text node.
// Characters are counted as runes, matching linear document offsets.
// Returns 0 for element nodes.
func (n *Node) Length() int {
	if n.Kind != KindText {
		return 0
	}
	return len([]rune(n.Text))
}

// Fragments returns the document's leaf text fragments in traversal order.
func (n *Node) Fragments() []*Node {
	if n == nil {
		return nil
	}
	var frags []*Node
	n.walk(func(node *Node) {
		if node.IsText() {
			frags = append(frags, node)
		}
	})
	return frags
}

// TotalLength returns the total character count across all text fragments.
func (n *Node) TotalLength() int {
	total := 0
	for _, f := range n.Fragments() {
		total += f.Length()
	}
	return total
}

// PlainText returns the concatenated text content of the document.
func (n *Node) PlainText() string {
	var out []byte
	for _, f := range n.Fragments() {
		out = append(out, f.Text...)
	}
	return string(out)
}

// walk visits the node and its descendants in depth-first order.
func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.walk(visit)
	}
}
