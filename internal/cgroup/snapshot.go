package cgroup

import (
	"sort"
	"time"
)

// Node is one group in a snapshot. Children are stored as paths, sorted
// lexicographically; the parent/child relation is derived from path
// structure at construction time, so a snapshot can never contain a cycle.
type Node struct {
	Path  Path
	Name  string
	Stats ResourceStats
	// Children holds the paths of direct children, sorted.
	Children []Path
	// Procs lists the processes attached directly to this group.
	Procs []ProcessInfo
}

// Snapshot is an immutable capture of the whole hierarchy at one instant.
// It is built once per collection cycle, handed to the coordinator by
// ownership transfer through the event bus, and never mutated afterwards.
type Snapshot struct {
	Nodes map[Path]*Node
	Procs []ProcessInfo
	Taken time.Time
	// Fallback marks a synthetic snapshot produced because the real
	// hierarchy was unreadable.
	Fallback bool
}

// NewSnapshot assembles a snapshot from scanned stats and process
// mappings. The root node and any missing intermediate ancestors are
// created with zero stats so the node set always forms a single rooted
// tree.
func NewSnapshot(stats map[Path]ResourceStats, procs []ProcessInfo, fallback bool) *Snapshot {
	snap := &Snapshot{
		Nodes:    make(map[Path]*Node, len(stats)+1),
		Procs:    procs,
		Taken:    time.Now(),
		Fallback: fallback,
	}

	for p, st := range stats {
		snap.ensureNode(p).Stats = st
	}
	if _, ok := snap.Nodes[Root]; !ok {
		snap.ensureNode(Root)
	}

	// Derive children purely from path prefixes.
	for p := range snap.Nodes {
		parent, ok := p.Parent()
		if !ok {
			continue
		}
		pn := snap.Nodes[parent]
		pn.Children = append(pn.Children, p)
	}
	for _, n := range snap.Nodes {
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i] < n.Children[j]
		})
	}

	// Attach processes to their owning group. Processes whose group
	// vanished between the scan and the mapping are kept in Procs but
	// not attached anywhere.
	for _, proc := range procs {
		if n, ok := snap.Nodes[proc.Group]; ok {
			n.Procs = append(n.Procs, proc)
		}
	}
	for _, n := range snap.Nodes {
		sort.Slice(n.Procs, func(i, j int) bool {
			return n.Procs[i].PID < n.Procs[j].PID
		})
	}

	return snap
}

// EmptySnapshot returns a snapshot with only a root node, used as the
// initial state before the first collection cycle completes.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, false)
}

// ensureNode returns the node at p, creating it and all missing ancestors.
func (s *Snapshot) ensureNode(p Path) *Node {
	if n, ok := s.Nodes[p]; ok {
		return n
	}
	n := &Node{Path: p, Name: p.Base()}
	s.Nodes[p] = n
	if parent, ok := p.Parent(); ok {
		s.ensureNode(parent)
	}
	return n
}

// Contains reports whether a group path exists in the snapshot.
func (s *Snapshot) Contains(p Path) bool {
	_, ok := s.Nodes[p]
	return ok
}

// Len returns the number of groups in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Nodes)
}

// Root returns the root node.
func (s *Snapshot) Root() *Node {
	return s.Nodes[Root]
}
