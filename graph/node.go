package graph

import (
	"sync"

	"github.com/specterops/geoidx/cardinality"
	"github.com/specterops/geoidx/util/size"
)

// UnregisteredNodeID is the zero value of ID, used to mark a Node that has not yet been assigned an identity by a
// host store.
const UnregisteredNodeID ID = 0

// Node represents a vertex in the property graph: a set of Kind labels and a Properties bag, identified by ID once
// persisted.
type Node struct {
	ID           ID
	Kinds        Kinds
	AddedKinds   Kinds
	DeletedKinds Kinds
	Properties   *Properties
}

// NewNode constructs a Node with an already-known ID, as returned by a host store.
func NewNode(id ID, properties *Properties, kinds ...Kind) *Node {
	return &Node{
		ID:         id,
		Kinds:      kinds,
		Properties: properties,
	}
}

// PrepareNode constructs a Node with no ID assigned, ready to be passed to a driver's node creation call.
func PrepareNode(properties *Properties, kinds ...Kind) *Node {
	return &Node{
		Kinds:      kinds,
		Properties: properties,
	}
}

// SizeOf returns an approximation of this Node's in-memory footprint.
func (s *Node) SizeOf() size.Size {
	nodeSize := size.Of(s) + s.ID.Sizeof() + s.Kinds.SizeOf() + s.AddedKinds.SizeOf() + s.DeletedKinds.SizeOf()

	if s.Properties != nil {
		nodeSize += s.Properties.SizeOf()
	}

	return nodeSize
}

// AddKind stages kind for addition the next time this Node is saved.
func (s *Node) AddKind(kind Kind) {
	if !s.Kinds.ContainsOneOf(kind) {
		s.Kinds = append(s.Kinds, kind)
		s.AddedKinds = append(s.AddedKinds, kind)
	}
}

// DeleteKind stages kind for removal the next time this Node is saved.
func (s *Node) DeleteKind(kind Kind) {
	for idx, existing := range s.Kinds {
		if existing.Is(kind) {
			s.Kinds = append(s.Kinds[:idx], s.Kinds[idx+1:]...)
			s.DeletedKinds = append(s.DeletedKinds, kind)
			break
		}
	}
}

// NodeSet is a mapped index of Node instances keyed by their ID field.
type NodeSet map[ID]*Node

// NewNodeSet returns a new NodeSet populated with the given nodes.
func NewNodeSet(nodes ...*Node) NodeSet {
	set := make(NodeSet, len(nodes))
	set.Add(nodes...)

	return set
}

// Len returns the number of unique Node instances in this set.
func (s NodeSet) Len() int {
	return len(s)
}

// Get returns a Node from this set by its database ID.
func (s NodeSet) Get(id ID) *Node {
	return s[id]
}

// Contains returns true if the given Node's ID is stored within this NodeSet.
func (s NodeSet) Contains(node *Node) bool {
	return s.ContainsID(node.ID)
}

// ContainsID returns true if the Node represented by the given ID is stored within this NodeSet.
func (s NodeSet) ContainsID(id ID) bool {
	_, seen := s[id]
	return seen
}

// Add adds the given Node instances to the NodeSet.
func (s NodeSet) Add(nodes ...*Node) {
	for _, node := range nodes {
		s[node.ID] = node
	}
}

// AddSet merges all Node instances from the given NodeSet into this NodeSet.
func (s NodeSet) AddSet(other NodeSet) {
	for k, v := range other {
		s[k] = v
	}
}

// Remove removes the Node with the given ID from this NodeSet.
func (s NodeSet) Remove(id ID) {
	delete(s, id)
}

// Slice returns a slice of the Node instances stored in this NodeSet.
func (s NodeSet) Slice() []*Node {
	slice := make([]*Node, 0, len(s))

	for _, v := range s {
		slice = append(slice, v)
	}

	return slice
}

// IDs returns a slice of every ID stored in this NodeSet.
func (s NodeSet) IDs() []ID {
	ids := make([]ID, 0, len(s))

	for id := range s {
		ids = append(ids, id)
	}

	return ids
}

// IDBitmap returns a new roaring64 bitmap containing every Node ID in this NodeSet.
func (s NodeSet) IDBitmap() cardinality.Duplex[uint64] {
	return NodeSetToDuplex(s)
}

// ThreadSafeNodeSet is a NodeSet guarded by a mutex, safe for concurrent use by traversal workers.
type ThreadSafeNodeSet struct {
	mu  sync.RWMutex
	set NodeSet
}

// NewThreadSafeNodeSet returns a new, empty ThreadSafeNodeSet.
func NewThreadSafeNodeSet() *ThreadSafeNodeSet {
	return &ThreadSafeNodeSet{
		set: NewNodeSet(),
	}
}

func (s *ThreadSafeNodeSet) Add(nodes ...*Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Add(nodes...)
}

func (s *ThreadSafeNodeSet) ContainsID(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.set.ContainsID(id)
}

func (s *ThreadSafeNodeSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.set.Len()
}

func (s *ThreadSafeNodeSet) Slice() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.set.Slice()
}

// NodeKindSet partitions a collection of Node instances by their Kind, for bulk kind-scoped operations.
type NodeKindSet map[string]NodeSet

// NewNodeKindSet returns a new, empty NodeKindSet.
func NewNodeKindSet() NodeKindSet {
	return NodeKindSet{}
}

// Add files node under every one of its Kinds.
func (s NodeKindSet) Add(node *Node) {
	for _, kind := range node.Kinds {
		key := kind.String()

		if _, exists := s[key]; !exists {
			s[key] = NewNodeSet()
		}

		s[key].Add(node)
	}
}

// Get returns the NodeSet filed under the given Kind.
func (s NodeKindSet) Get(kind Kind) NodeSet {
	return s[kind.String()]
}

// AllNodes flattens this NodeKindSet back into a single NodeSet.
func (s NodeKindSet) AllNodes() NodeSet {
	all := NewNodeSet()

	for _, nodes := range s {
		all.AddSet(nodes)
	}

	return all
}

// KindBitmaps associates each Kind with a bitmap of the IDs of entities carrying that Kind.
type KindBitmaps map[string]cardinality.Duplex[uint64]

// NewKindBitmaps returns a new, empty KindBitmaps.
func NewKindBitmaps() KindBitmaps {
	return KindBitmaps{}
}

// Add records that id carries kind.
func (s KindBitmaps) Add(kind Kind, id ID) {
	key := kind.String()

	if _, exists := s[key]; !exists {
		s[key] = cardinality.NewBitmap64()
	}

	s[key].Add(id.Uint64())
}

// ThreadSafeKindBitmap is a KindBitmaps guarded by a mutex.
type ThreadSafeKindBitmap struct {
	mu      sync.RWMutex
	bitmaps KindBitmaps
}

// NewThreadSafeKindBitmap returns a new, empty ThreadSafeKindBitmap.
func NewThreadSafeKindBitmap() *ThreadSafeKindBitmap {
	return &ThreadSafeKindBitmap{
		bitmaps: NewKindBitmaps(),
	}
}

func (s *ThreadSafeKindBitmap) Add(kind Kind, id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bitmaps.Add(kind, id)
}

func (s *ThreadSafeKindBitmap) Contains(kind Kind, id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bitmap, exists := s.bitmaps[kind.String()]
	return exists && bitmap.Contains(id.Uint64())
}

// Uint32SliceToIDs converts a slice of uint32 database identifiers to a slice of ID.
func Uint32SliceToIDs(values []uint32) []ID {
	ids := make([]ID, len(values))

	for idx, value := range values {
		ids[idx] = ID(value)
	}

	return ids
}

// Uint64SliceToIDs converts a slice of uint64 database identifiers to a slice of ID.
func Uint64SliceToIDs(values []uint64) []ID {
	ids := make([]ID, len(values))

	for idx, value := range values {
		ids[idx] = ID(value)
	}

	return ids
}

// NodeIDsToDuplex returns a new roaring64 bitmap containing the given Node IDs.
func NodeIDsToDuplex(ids []ID) cardinality.Duplex[uint64] {
	bitmap := cardinality.NewBitmap64()

	for _, id := range ids {
		bitmap.Add(id.Uint64())
	}

	return bitmap
}

// NodeSetToDuplex returns a new roaring64 bitmap containing the IDs of every Node in the given NodeSet.
func NodeSetToDuplex(nodes NodeSet) cardinality.Duplex[uint64] {
	bitmap := cardinality.NewBitmap64()

	for id := range nodes {
		bitmap.Add(id.Uint64())
	}

	return bitmap
}
