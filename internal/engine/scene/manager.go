package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/messages"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// MessageSink receives user-facing messages.
type MessageSink interface {
	AddMessage(t messages.Type, fileNotFound bool, text string)
}

type discardSink struct{}

func (discardSink) AddMessage(messages.Type, bool, string) {}

// Manager instantiates prototypes into a VisibleObjects set.
type Manager struct {
	visible *VisibleObjects
	sink    MessageSink
	log     *zap.Logger
	nextID  int
}

// NewManager creates a manager adding objects to visible and reporting
// problems to sink.
func NewManager(visible *VisibleObjects, sink MessageSink, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = discardSink{}
	}
	return &Manager{visible: visible, sink: sink, log: log}
}

// Visible returns the object set the manager fills.
func (m *Manager) Visible() *VisibleObjects {
	return m.visible
}

// CreateObject places every part of proto and returns the new object IDs.
// A part's orientation is the base frame turned by the part's angles and then
// attached to aux; its position is carried through the combined frame.
func (m *Manager) CreateObject(proto UnifiedObject, position math.Vector3, base, aux math.Transformation) []int {
	if proto == nil {
		return nil
	}
	if s, ok := proto.(*StaticObject); ok {
		if id := m.CreateStaticObject(s, position, base, aux); id >= 0 {
			return []int{id}
		}
		return nil
	}

	frame := math.Compose(base, aux)
	var ids []int
	for _, part := range proto.Parts() {
		if part.Prototype == nil {
			continue
		}
		partBase := base
		if part.Yaw != 0 || part.Pitch != 0 || part.Roll != 0 {
			partBase = base.Rotate(part.Yaw, part.Pitch, part.Roll)
		}
		partPos := position.Add(frame.Apply(part.Position))
		ids = append(ids, m.add(part.Prototype, partPos, partBase, aux))
	}
	return ids
}

// CreateStaticObject places a static prototype and returns its ID. Any other
// kind of prototype is rejected with an error message and -1.
func (m *Manager) CreateStaticObject(proto UnifiedObject, position math.Vector3, base, aux math.Transformation) int {
	s, ok := proto.(*StaticObject)
	if !ok || s == nil {
		m.sink.AddMessage(messages.Error, false, "Attempted to use an animated object where only static objects are allowed.")
		return -1
	}
	return m.add(s, position, base, aux)
}

func (m *Manager) add(s *StaticObject, position math.Vector3, base, aux math.Transformation) int {
	id := m.nextID
	m.nextID++
	o := NewObjectState(id, s, position, base, aux)
	if skipped := m.visible.Add(o); skipped > 0 {
		m.sink.AddMessage(messages.Warning, false,
			fmt.Sprintf("%d invalid faces in object %q were ignored.", skipped, s.Name))
	}
	m.log.Debug("object created",
		zap.Int("id", id),
		zap.String("name", s.Name),
		zap.Int("faces", len(s.Mesh.Faces)),
	)
	return id
}

// Reset removes all objects.
func (m *Manager) Reset() {
	m.visible.Clear()
	m.nextID = 0
}
