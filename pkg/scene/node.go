package scene

import "github.com/go-vivid/vivid/pkg/graphics"

// Node is a member of the scene graph. Nodes are painted back-to-front in
// child order; each node paints relative to its accumulated parent offset.
type Node interface {
	// Paint draws the node into the canvas. origin is the accumulated
	// offset of all ancestors.
	Paint(c *Canvas, origin graphics.Offset)

	// Destroy releases any resources held by the node. Containers destroy
	// their children first. Destroy is idempotent.
	Destroy()

	setParent(p *Container)
	parent() *Container
}

// nodeBase carries the state shared by all node types.
type nodeBase struct {
	Position  graphics.Offset
	Visible   bool
	owner     *Container
	destroyed bool
}

func newNodeBase() nodeBase {
	return nodeBase{Visible: true}
}

func (n *nodeBase) setParent(p *Container) { n.owner = p }
func (n *nodeBase) parent() *Container     { return n.owner }

// Container is a node that groups children. The renderer's stage is the
// root container; scene-graph components attach their visuals under the
// mount target container they are given at construction.
type Container struct {
	nodeBase
	children []Node
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{nodeBase: newNodeBase()}
}

// AddChild appends a node to this container. A node already parented
// elsewhere is reparented here.
func (c *Container) AddChild(n Node) {
	if n == nil {
		return
	}
	if p := n.parent(); p != nil {
		p.RemoveChild(n)
	}
	n.setParent(c)
	c.children = append(c.children, n)
}

// RemoveChild detaches a node without destroying it.
func (c *Container) RemoveChild(n Node) {
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			n.setParent(nil)
			return
		}
	}
}

// Children returns the current child list. Callers must not mutate it.
func (c *Container) Children() []Node {
	return c.children
}

// Paint paints all visible children in order.
func (c *Container) Paint(canvas *Canvas, origin graphics.Offset) {
	if !c.Visible {
		return
	}
	at := graphics.Offset{X: origin.X + c.Position.X, Y: origin.Y + c.Position.Y}
	for _, child := range c.children {
		child.Paint(canvas, at)
	}
}

// Destroy destroys all children and detaches from the parent.
func (c *Container) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, child := range c.children {
		child.setParent(nil)
		child.Destroy()
	}
	c.children = nil
	if c.owner != nil {
		c.owner.RemoveChild(c)
	}
}

// Box is a filled rectangle node.
type Box struct {
	nodeBase
	Size  graphics.Size
	Color graphics.Color
}

// NewBox creates a filled rectangle node.
func NewBox(size graphics.Size, col graphics.Color) *Box {
	return &Box{nodeBase: newNodeBase(), Size: size, Color: col}
}

func (b *Box) Paint(c *Canvas, origin graphics.Offset) {
	if !b.Visible {
		return
	}
	c.FillRect(graphics.RectFromLTWH(origin.X+b.Position.X, origin.Y+b.Position.Y, b.Size.Width, b.Size.Height), b.Color)
}

func (b *Box) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.owner != nil {
		b.owner.RemoveChild(b)
	}
}

// Dot is a filled circle node.
type Dot struct {
	nodeBase
	Radius float64
	Color  graphics.Color
}

// NewDot creates a filled circle node.
func NewDot(radius float64, col graphics.Color) *Dot {
	return &Dot{nodeBase: newNodeBase(), Radius: radius, Color: col}
}

func (d *Dot) Paint(c *Canvas, origin graphics.Offset) {
	if !d.Visible {
		return
	}
	c.FillCircle(graphics.Offset{X: origin.X + d.Position.X, Y: origin.Y + d.Position.Y}, d.Radius, d.Color)
}

func (d *Dot) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	if d.owner != nil {
		d.owner.RemoveChild(d)
	}
}

// Factory creates scene nodes. A Factory is handed to scene-graph components
// through the host context so they can build visuals without importing the
// renderer directly.
type Factory struct{}

// NewContainer creates an empty container node.
func (Factory) NewContainer() *Container { return NewContainer() }

// NewBox creates a filled rectangle node.
func (Factory) NewBox(size graphics.Size, col graphics.Color) *Box { return NewBox(size, col) }

// NewDot creates a filled circle node.
func (Factory) NewDot(radius float64, col graphics.Color) *Dot { return NewDot(radius, col) }
