package scrollfx

import "math"

// Property names one animatable field of a target.
type Property uint8

// Animatable properties.
const (
	PropX Property = iota
	PropY
	PropZ
	PropScale
	PropRotation
	PropOpacity
	numProps
)

var propertyNames = [numProps]string{"x", "y", "z", "scale", "rotation", "opacity"}

func (p Property) String() string {
	if p < numProps {
		return propertyNames[p]
	}
	return "unknown"
}

// Props is a partial property bag: only properties that were set are
// written. The zero value sets nothing. Props is a value type; the setters
// return a modified copy so calls chain:
//
//	b.Apply(id, Props{}.SetX(x).SetOpacity(1))
//
// Non-finite values are dropped at the setter.
type Props struct {
	mask uint8
	vals [numProps]float64
}

// Set returns p with prop set to v. NaN and Inf are ignored.
func (p Props) Set(prop Property, v float64) Props {
	if prop >= numProps || math.IsNaN(v) || math.IsInf(v, 0) {
		return p
	}
	p.mask |= 1 << prop
	p.vals[prop] = v
	return p
}

func (p Props) SetX(v float64) Props        { return p.Set(PropX, v) }
func (p Props) SetY(v float64) Props        { return p.Set(PropY, v) }
func (p Props) SetZ(v float64) Props        { return p.Set(PropZ, v) }
func (p Props) SetScale(v float64) Props    { return p.Set(PropScale, v) }
func (p Props) SetRotation(v float64) Props { return p.Set(PropRotation, v) }
func (p Props) SetOpacity(v float64) Props  { return p.Set(PropOpacity, v) }

// Get returns the value of prop and whether it was set.
func (p Props) Get(prop Property) (float64, bool) {
	if prop >= numProps || p.mask&(1<<prop) == 0 {
		return 0, false
	}
	return p.vals[prop], true
}

// Has reports whether prop is set.
func (p Props) Has(prop Property) bool {
	return prop < numProps && p.mask&(1<<prop) != 0
}

// Empty reports whether no property is set.
func (p Props) Empty() bool {
	return p.mask == 0
}

// Merge returns p overlaid with every property set in o; o wins.
func (p Props) Merge(o Props) Props {
	for i := Property(0); i < numProps; i++ {
		if o.mask&(1<<i) != 0 {
			p.mask |= 1 << i
			p.vals[i] = o.vals[i]
		}
	}
	return p
}

// PropertyBag is the full set of animatable values held by a target.
type PropertyBag struct {
	X, Y, Z  float64
	Scale    float64
	Rotation float64 // degrees
	Opacity  float64
}

// DefaultPropertyBag is the neutral pose: origin, unscaled, fully opaque.
func DefaultPropertyBag() PropertyBag {
	return PropertyBag{Scale: 1, Opacity: 1}
}

// Apply writes every property set in p.
func (b *PropertyBag) Apply(p Props) {
	if v, ok := p.Get(PropX); ok {
		b.X = v
	}
	if v, ok := p.Get(PropY); ok {
		b.Y = v
	}
	if v, ok := p.Get(PropZ); ok {
		b.Z = v
	}
	if v, ok := p.Get(PropScale); ok {
		b.Scale = v
	}
	if v, ok := p.Get(PropRotation); ok {
		b.Rotation = v
	}
	if v, ok := p.Get(PropOpacity); ok {
		b.Opacity = v
	}
}

// TargetID is an opaque handle to a visual element, such as a card, a title
// layer, or one glyph of shaped text.
type TargetID string

// Node is a live element of the visual tree.
type Node interface {
	SetProperties(Props)
	IsDisposed() bool
}

// Resolver maps target handles to live nodes. A miss means the element no
// longer exists.
type Resolver interface {
	Resolve(id TargetID) (Node, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(id TargetID) (Node, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(id TargetID) (Node, bool) { return f(id) }

// Binding collects property writes for a frame and pushes them to the visual
// tree in one pass. Later writes to the same property within a frame replace
// earlier ones, so each property reaches a node at most once per Flush.
type Binding struct {
	resolver Resolver
	pending  map[TargetID]Props
	order    []TargetID
}

// NewBinding creates a binding that resolves targets through r.
func NewBinding(r Resolver) *Binding {
	return &Binding{
		resolver: r,
		pending:  make(map[TargetID]Props),
	}
}

// Apply records props for id. Empty props are ignored.
func (b *Binding) Apply(id TargetID, props Props) {
	if props.Empty() {
		return
	}
	cur, ok := b.pending[id]
	if !ok {
		b.order = append(b.order, id)
	}
	b.pending[id] = cur.Merge(props)
}

// Pending returns the merged props recorded for id this frame.
func (b *Binding) Pending(id TargetID) (Props, bool) {
	p, ok := b.pending[id]
	return p, ok
}

// Flush writes every recorded bag to its node, in first-Apply order, and
// starts a new frame. Targets that fail to resolve or are disposed are
// skipped silently. It returns the number of nodes written.
func (b *Binding) Flush() int {
	written := 0
	for _, id := range b.order {
		props := b.pending[id]
		if b.resolver == nil {
			continue
		}
		n, ok := b.resolver.Resolve(id)
		if !ok || n == nil || n.IsDisposed() {
			continue
		}
		n.SetProperties(props)
		written++
	}
	b.Discard()
	return written
}

// Discard drops every write recorded this frame.
func (b *Binding) Discard() {
	clear(b.pending)
	clear(b.order)
	b.order = b.order[:0]
}
