package scene

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/google/uuid"
)

var now = time.Now

// maxIDAttempts bounds how many times allocation retries a colliding identifier.
const maxIDAttempts = 8

// Store owns the nodes of one scene.
type Store struct {
	scene   *domain.Scene
	retired map[domain.NodeID]struct{}

	newID  func() domain.NodeID
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid based node identifier source.
func WithIDGenerator(fn func() domain.NodeID) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithSceneID sets the document identifier of a new scene.
func WithSceneID(id string) Option {
	return func(s *Store) {
		s.scene.ID = id
	}
}

// WithRetired marks ids as removed earlier so allocation never hands them out again.
func WithRetired(ids ...domain.NodeID) Option {
	return func(s *Store) {
		for _, id := range ids {
			s.retired[id] = struct{}{}
		}
	}
}

// WithHooks registers lifecycle callbacks fired after successful mutations.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func newNodeID() domain.NodeID {
	return domain.NodeID(uuid.NewString())
}

func newStore(sc *domain.Scene, opts []Option) *Store {
	s := &Store{
		scene:   sc,
		retired: make(map[domain.NodeID]struct{}),
		newID:   newNodeID,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a scene whose root is a fresh Container with default properties.
func New(name string, opts ...Option) *Store {
	s := newStore(&domain.Scene{
		ID:    uuid.NewString(),
		Name:  name,
		Nodes: make(map[domain.NodeID]*domain.Node),
	}, opts)

	rootID := s.newID()
	if rootID == "" {
		rootID = newNodeID()
	}
	s.scene.RootID = rootID
	s.scene.Nodes[rootID] = domain.NewNode(rootID, "Root", domain.NodeTypeContainer)
	return s
}

// Load adopts a persisted scene. The scene is validated and copied; later
// changes to sc do not affect the store.
//
// Retired identifiers are not part of the persisted scene, so a loaded store
// starts with none unless WithRetired supplies them. session.Manager carries
// them between edits, which makes the no-reuse guarantee hold per process.
func Load(sc *domain.Scene, opts ...Option) (*Store, error) {
	if sc == nil {
		return nil, fmt.Errorf("load scene: %w", domain.ErrInvalidScene)
	}
	if errs := Validate(sc); len(errs) > 0 {
		return nil, fmt.Errorf("load scene %q: %w", sc.ID, errs[0])
	}
	return newStore(sc.Snapshot(), opts), nil
}

// Retired lists the identifiers removed from this scene, sorted.
func (s *Store) Retired() []domain.NodeID {
	ids := make([]domain.NodeID, 0, len(s.retired))
	for id := range s.retired {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ID returns the document identifier.
func (s *Store) ID() string { return s.scene.ID }

// Name returns the scene name.
func (s *Store) Name() string { return s.scene.Name }

// SetName renames the scene.
func (s *Store) SetName(name string) { s.scene.Name = name }

// RootID returns the identifier of the root Container.
func (s *Store) RootID() domain.NodeID { return s.scene.RootID }

// Len returns the number of nodes, root included.
func (s *Store) Len() int { return len(s.scene.Nodes) }

// Scene returns a deep copy of the whole scene.
func (s *Store) Scene() *domain.Scene {
	return s.scene.Snapshot()
}

// Node returns a copy of the node with the given identifier.
func (s *Store) Node(id domain.NodeID) (*domain.Node, bool) {
	n, ok := s.scene.Nodes[id]
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Nodes returns copies of all nodes sorted by identifier.
func (s *Store) Nodes() []*domain.Node {
	out := make([]*domain.Node, 0, len(s.scene.Nodes))
	for _, id := range s.scene.IDs() {
		out = append(out, s.scene.Nodes[id].Clone())
	}
	return out
}

// Children returns the ordered child identifiers of a node.
func (s *Store) Children(id domain.NodeID) ([]domain.NodeID, error) {
	n, ok := s.scene.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("children of %q: %w", id, domain.ErrNodeNotFound)
	}
	return slices.Clone(n.Children), nil
}

// allocate returns an identifier that is neither live, retired nor in taken.
func (s *Store) allocate(taken map[domain.NodeID]struct{}) (domain.NodeID, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, live := s.scene.Nodes[id]; live {
			continue
		}
		if _, dead := s.retired[id]; dead {
			continue
		}
		if _, staged := taken[id]; staged {
			continue
		}
		return id, nil
	}
	return "", domain.ErrIDExhausted
}

// AddNode creates a node of type t with default properties and appends it to
// the children of parentID.
func (s *Store) AddNode(parentID domain.NodeID, name string, t domain.NodeType) (domain.NodeID, error) {
	parent, ok := s.scene.Nodes[parentID]
	if !ok {
		return "", fmt.Errorf("add %s under %q: %w", t, parentID, domain.ErrNodeNotFound)
	}
	id, err := s.allocate(nil)
	if err != nil {
		return "", fmt.Errorf("add %s under %q: %w", t, parentID, err)
	}

	n := domain.NewNode(id, name, t)
	p := parentID
	n.ParentID = &p
	parent.Children = append(parent.Children, id)
	s.scene.Nodes[id] = n

	s.logger.Debug("Node added", "scene_id", s.scene.ID, "node_id", id, "type", t.String())
	s.fireNode(s.hooks.OnNodeAdded, domain.EventNodeAdded, n, 0)
	return id, nil
}

// RemoveNode deletes a node together with its whole subtree and detaches it
// from its parent. The root cannot be removed.
func (s *Store) RemoveNode(id domain.NodeID) error {
	if id == s.scene.RootID {
		return fmt.Errorf("remove %q: %w", id, domain.ErrRootOperation)
	}
	n, ok := s.scene.Nodes[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, domain.ErrNodeNotFound)
	}

	doomed := s.subtree(id)

	if pid, ok := n.Parent(); ok {
		if parent, ok := s.scene.Nodes[pid]; ok {
			parent.Children = slices.DeleteFunc(parent.Children, func(c domain.NodeID) bool { return c == id })
		}
	}
	// Descendants go first, the node itself last.
	for i := len(doomed) - 1; i >= 0; i-- {
		delete(s.scene.Nodes, doomed[i])
		s.retired[doomed[i]] = struct{}{}
	}

	s.logger.Debug("Node removed", "scene_id", s.scene.ID, "node_id", id, "removed", len(doomed))
	s.fireNode(s.hooks.OnNodeRemoved, domain.EventNodeRemoved, n, len(doomed))
	return nil
}

// subtree lists id and every live descendant in pre-order using an explicit stack.
func (s *Store) subtree(id domain.NodeID) []domain.NodeID {
	var out []domain.NodeID
	seen := make(map[domain.NodeID]struct{})
	stack := []domain.NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[cur]; dup {
			continue
		}
		n, ok := s.scene.Nodes[cur]
		if !ok {
			continue
		}
		seen[cur] = struct{}{}
		out = append(out, cur)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// MoveNode reparents id under newParent at position index among its children.
// An index of -1 appends. Moving within the same parent reorders.
func (s *Store) MoveNode(id, newParent domain.NodeID, index int) error {
	if id == s.scene.RootID {
		return fmt.Errorf("move %q: %w", id, domain.ErrRootOperation)
	}
	n, ok := s.scene.Nodes[id]
	if !ok {
		return fmt.Errorf("move %q: %w", id, domain.ErrNodeNotFound)
	}
	target, ok := s.scene.Nodes[newParent]
	if !ok {
		return fmt.Errorf("move %q to %q: %w", id, newParent, domain.ErrNodeNotFound)
	}
	for cur, hop := newParent, 0; hop <= len(s.scene.Nodes); hop++ {
		if cur == id {
			return fmt.Errorf("move %q under %q: %w", id, newParent, domain.ErrCycle)
		}
		up, ok := s.scene.Nodes[cur]
		if !ok {
			break
		}
		p, ok := up.Parent()
		if !ok {
			break
		}
		cur = p
	}

	oldParent, _ := n.Parent()
	siblings := target.Children
	if oldParent == newParent {
		siblings = slices.DeleteFunc(slices.Clone(siblings), func(c domain.NodeID) bool { return c == id })
	}
	if index == -1 {
		index = len(siblings)
	}
	if index < 0 || index > len(siblings) {
		return fmt.Errorf("move %q to %q at %d: %w", id, newParent, index, domain.ErrIndexOutOfRange)
	}

	if oldParent != newParent {
		if old, ok := s.scene.Nodes[oldParent]; ok {
			old.Children = slices.DeleteFunc(old.Children, func(c domain.NodeID) bool { return c == id })
		}
		siblings = slices.Clone(siblings)
	}
	target.Children = slices.Insert(siblings, index, id)
	p := newParent
	n.ParentID = &p

	s.logger.Debug("Node moved", "scene_id", s.scene.ID, "node_id", id, "parent_id", newParent, "index", index)
	s.fireNode(s.hooks.OnNodeMoved, domain.EventNodeMoved, n, 0)
	return nil
}

// RenameNode changes the display name of a node.
func (s *Store) RenameNode(id domain.NodeID, name string) error {
	n, ok := s.scene.Nodes[id]
	if !ok {
		return fmt.Errorf("rename %q: %w", id, domain.ErrNodeNotFound)
	}
	n.Name = name
	return nil
}

// SetProperty overwrites or inserts a property. The zero PropertyValue is
// rejected with domain.ErrTypeMismatch.
func (s *Store) SetProperty(id domain.NodeID, key string, value domain.PropertyValue) error {
	n, ok := s.scene.Nodes[id]
	if !ok {
		return fmt.Errorf("set %q on %q: %w", key, id, domain.ErrNodeNotFound)
	}
	if !value.IsValid() {
		return fmt.Errorf("set %q on %q: %w", key, id, domain.ErrTypeMismatch)
	}
	if n.Properties == nil {
		n.Properties = make(map[string]domain.PropertyValue)
	}
	n.Properties[key] = value

	if s.hooks.OnPropertySet != nil {
		s.hooks.OnPropertySet(context.Background(), &domain.PropertyEvent{
			EventBase: s.eventBase(domain.EventPropertySet),
			NodeID:    id,
			Key:       key,
			Value:     value,
		})
	}
	return nil
}

// SetPropertyRaw decodes raw with domain.DecodePropertyValue and stores it.
func (s *Store) SetPropertyRaw(id domain.NodeID, key string, raw any) error {
	if _, ok := s.scene.Nodes[id]; !ok {
		return fmt.Errorf("set %q on %q: %w", key, id, domain.ErrNodeNotFound)
	}
	v, err := domain.DecodePropertyValue(raw)
	if err != nil {
		return fmt.Errorf("set %q on %q: %w", key, id, err)
	}
	return s.SetProperty(id, key, v)
}

// Property returns the raw value stored under key.
func (s *Store) Property(id domain.NodeID, key string) (domain.PropertyValue, bool) {
	n, ok := s.scene.Nodes[id]
	if !ok {
		return domain.PropertyValue{}, false
	}
	return n.Property(key)
}

// Number reads a numeric property. An unknown node, an absent key or another
// variant all yield def.
func (s *Store) Number(id domain.NodeID, key string, def float64) float64 {
	if n, ok := s.scene.Nodes[id]; ok {
		return n.Number(key, def)
	}
	return def
}

// Text reads a text property with the fallback rule of Number.
func (s *Store) Text(id domain.NodeID, key string, def string) string {
	if n, ok := s.scene.Nodes[id]; ok {
		return n.Text(key, def)
	}
	return def
}

// Bool reads a boolean property with the fallback rule of Number.
func (s *Store) Bool(id domain.NodeID, key string, def bool) bool {
	if n, ok := s.scene.Nodes[id]; ok {
		return n.Bool(key, def)
	}
	return def
}

// Color reads a packed color with the fallback rule of Number.
func (s *Store) Color(id domain.NodeID, key string, def uint32) uint32 {
	if n, ok := s.scene.Nodes[id]; ok {
		return n.Color(key, def)
	}
	return def
}

// Walk visits nodes in pre-order starting at the root. depth is 0 for the root.
// Returning false from fn stops the walk. fn must not mutate the store.
func (s *Store) Walk(fn func(n *domain.Node, depth int) bool) {
	Walk(s.scene, fn)
}

// Walk visits the nodes of sc in pre-order with an explicit stack. Identifiers
// missing from sc are skipped.
func Walk(sc *domain.Scene, fn func(n *domain.Node, depth int) bool) {
	type frame struct {
		id    domain.NodeID
		depth int
	}
	stack := []frame{{sc.RootID, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := sc.Nodes[f.id]
		if !ok {
			continue
		}
		if !fn(n, f.depth) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.Children[i], f.depth + 1})
		}
	}
}

// Find resolves a slash separated path of node names, e.g. "/Menu/Button".
// Each segment matches the first child with that name. "/" is the root.
func (s *Store) Find(path string) (domain.NodeID, bool) {
	cur := s.scene.RootID
	for seg := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		n := s.scene.Nodes[cur]
		next, found := domain.NodeID(""), false
		for _, c := range n.Children {
			if child, ok := s.scene.Nodes[c]; ok && child.Name == seg {
				next, found = c, true
				break
			}
		}
		if !found {
			return "", false
		}
		cur = next
	}
	return cur, true
}

// Resolve accepts a node identifier or a path starting with '/'.
func (s *Store) Resolve(ref string) (domain.NodeID, error) {
	if _, ok := s.scene.Nodes[domain.NodeID(ref)]; ok {
		return domain.NodeID(ref), nil
	}
	if strings.HasPrefix(ref, "/") {
		if id, ok := s.Find(ref); ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("resolve %q: %w", ref, domain.ErrNodeNotFound)
}

func (s *Store) eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: now(),
		Type:      t,
		SceneID:   s.scene.ID,
	}
}

func (s *Store) fireNode(hook func(context.Context, *domain.NodeEvent), t domain.EventType, n *domain.Node, removed int) {
	if hook == nil {
		return
	}
	pid, _ := n.Parent()
	hook(context.Background(), &domain.NodeEvent{
		EventBase: s.eventBase(t),
		NodeID:    n.ID,
		NodeType:  n.Type,
		ParentID:  pid,
		Removed:   removed,
	})
}
