// Package tree holds the navigable view state over successive hierarchy
// snapshots: which groups are expanded, which row is selected, and how far
// the viewport has scrolled. It is owned by the coordinator goroutine and
// is not safe for concurrent use.
package tree

import (
	"github.com/rileyhilliard/cgtop/internal/cgroup"
)

// Row is one visible line of the tree pane, in pre-order position.
type Row struct {
	Path        cgroup.Path
	Node        *cgroup.Node
	Depth       int
	Expanded    bool
	HasChildren bool
	Selected    bool
}

// State is the view state machine. Apply merges each fresh snapshot into
// it while preserving as much of the user's position as still makes sense:
// the expanded set is intersected with the surviving groups, the selection
// falls back along its ancestor chain, and the scroll offset is re-clamped.
type State struct {
	snap     *cgroup.Snapshot
	expanded map[cgroup.Path]struct{}
	selected cgroup.Path
	hasSel   bool
	visible  []cgroup.Path
	scroll   int
	height   int
	seeded   bool
}

// NewState creates an empty state with no snapshot applied yet.
func NewState() *State {
	return &State{
		expanded: make(map[cgroup.Path]struct{}),
		height:   1,
	}
}

// Apply merges a fresh snapshot into the state. Groups that vanished are
// dropped from the expanded set; a vanished selection moves to its nearest
// surviving ancestor, then the root, then nothing. The visible row cache
// is rebuilt and the scroll offset clamped. Nil snapshots are ignored.
func (s *State) Apply(snap *cgroup.Snapshot) {
	if snap == nil {
		return
	}
	s.snap = snap

	for p := range s.expanded {
		if !snap.Contains(p) {
			delete(s.expanded, p)
		}
	}
	// The root starts expanded so the first snapshot shows its children.
	// Only seeded once: a later collapse of the root sticks.
	if !s.seeded && snap.Contains(cgroup.Root) {
		s.expanded[cgroup.Root] = struct{}{}
		s.seeded = true
	}

	s.resolveSelection(snap)
	s.rebuild()
}

// resolveSelection keeps the selection if its group survived, otherwise
// walks up the ancestor chain to the nearest surviving group.
func (s *State) resolveSelection(snap *cgroup.Snapshot) {
	if s.hasSel && snap.Contains(s.selected) {
		return
	}
	if s.hasSel {
		p := s.selected
		for {
			parent, ok := p.Parent()
			if !ok {
				break
			}
			if snap.Contains(parent) {
				s.selected = parent
				return
			}
			p = parent
		}
	}
	if snap.Contains(cgroup.Root) {
		s.selected = cgroup.Root
		s.hasSel = true
		return
	}
	s.selected = ""
	s.hasSel = false
}

// rebuild recomputes the visible row cache: a depth-first pre-order walk
// from the root, descending only into expanded groups. Children are
// already sorted within the snapshot, so the order is deterministic.
func (s *State) rebuild() {
	s.visible = s.visible[:0]
	if s.snap == nil {
		s.scroll = 0
		return
	}
	root := s.snap.Root()
	if root != nil {
		s.walk(root)
	}

	// Collapsing can hide the selected group; pull the selection up to
	// its nearest visible ancestor so it always has a row.
	if s.hasSel && s.indexOf(s.selected) < 0 {
		p := s.selected
		for {
			parent, ok := p.Parent()
			if !ok {
				break
			}
			if s.indexOf(parent) >= 0 {
				s.selected = parent
				break
			}
			p = parent
		}
	}
	s.clampScroll()
}

func (s *State) walk(n *cgroup.Node) {
	s.visible = append(s.visible, n.Path)
	if _, open := s.expanded[n.Path]; !open {
		return
	}
	for _, child := range n.Children {
		if cn, ok := s.snap.Nodes[child]; ok {
			s.walk(cn)
		}
	}
}

// SelectNext moves the selection down one visible row, wrapping to the top.
func (s *State) SelectNext() {
	s.step(1)
}

// SelectPrev moves the selection up one visible row, wrapping to the bottom.
func (s *State) SelectPrev() {
	s.step(-1)
}

func (s *State) step(delta int) {
	if len(s.visible) == 0 {
		return
	}
	i := s.indexOf(s.selected)
	if !s.hasSel || i < 0 {
		i = 0
	} else {
		i = (i + delta + len(s.visible)) % len(s.visible)
	}
	s.selected = s.visible[i]
	s.hasSel = true
	s.clampScroll()
}

// Toggle flips the expanded state of the selected group. Leaves are left
// alone so toggling never creates a dangling expanded entry.
func (s *State) Toggle() {
	n, ok := s.SelectedNode()
	if !ok || len(n.Children) == 0 {
		return
	}
	if _, open := s.expanded[s.selected]; open {
		delete(s.expanded, s.selected)
	} else {
		s.expanded[s.selected] = struct{}{}
	}
	s.rebuild()
}

// Collapse closes the selected group if it is open, otherwise moves the
// selection to its parent.
func (s *State) Collapse() {
	if !s.hasSel {
		return
	}
	if _, open := s.expanded[s.selected]; open {
		delete(s.expanded, s.selected)
		s.rebuild()
		return
	}
	s.JumpToParent()
}

// JumpToParent moves the selection to the parent of the selected group.
func (s *State) JumpToParent() {
	if !s.hasSel {
		return
	}
	parent, ok := s.selected.Parent()
	if !ok || s.snap == nil || !s.snap.Contains(parent) {
		return
	}
	s.selected = parent
	s.clampScroll()
}

// SetHeight tells the state how many rows the viewport can show, so
// scrolling keeps the selection inside it.
func (s *State) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.height = h
	s.clampScroll()
}

// clampScroll keeps the scroll offset in range and the selected row inside
// the viewport.
func (s *State) clampScroll() {
	max := len(s.visible) - s.height
	if max < 0 {
		max = 0
	}
	if s.scroll > max {
		s.scroll = max
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	if i := s.indexOf(s.selected); s.hasSel && i >= 0 {
		if i < s.scroll {
			s.scroll = i
		} else if i >= s.scroll+s.height {
			s.scroll = i - s.height + 1
		}
	}
}

func (s *State) indexOf(p cgroup.Path) int {
	for i, v := range s.visible {
		if v == p {
			return i
		}
	}
	return -1
}

// Rows returns every visible row in pre-order, annotated for rendering.
func (s *State) Rows() []Row {
	rows := make([]Row, 0, len(s.visible))
	for _, p := range s.visible {
		n := s.snap.Nodes[p]
		_, open := s.expanded[p]
		rows = append(rows, Row{
			Path:        p,
			Node:        n,
			Depth:       p.Depth(),
			Expanded:    open,
			HasChildren: len(n.Children) > 0,
			Selected:    s.hasSel && p == s.selected,
		})
	}
	return rows
}

// SelectedNode returns the node for the current selection.
func (s *State) SelectedNode() (*cgroup.Node, bool) {
	if !s.hasSel || s.snap == nil {
		return nil, false
	}
	n, ok := s.snap.Nodes[s.selected]
	return n, ok
}

// SelectedPath returns the selected group path.
func (s *State) SelectedPath() (cgroup.Path, bool) {
	return s.selected, s.hasSel
}

// SelectedIndex returns the selection's position among visible rows, or -1.
func (s *State) SelectedIndex() int {
	if !s.hasSel {
		return -1
	}
	return s.indexOf(s.selected)
}

// IsExpanded reports whether a group is currently expanded.
func (s *State) IsExpanded(p cgroup.Path) bool {
	_, ok := s.expanded[p]
	return ok
}

// ScrollOffset returns the first visible row index shown in the viewport.
func (s *State) ScrollOffset() int {
	return s.scroll
}

// Len returns the number of visible rows.
func (s *State) Len() int {
	return len(s.visible)
}

// Snapshot returns the most recently applied snapshot, or nil.
func (s *State) Snapshot() *cgroup.Snapshot {
	return s.snap
}
