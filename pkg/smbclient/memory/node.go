package memory

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

const allocationUnit = 4096

type node struct {
	name     string
	dir      bool
	parent   *node
	children map[string]*node

	data  []byte
	attrs uint32

	btime, atime, mtime, ctime time.Time

	openCount     int
	deletePending bool
	corrupt       bool
}

func newNode(name string, dir bool, parent *node, now time.Time) *node {
	n := &node{
		name:   name,
		dir:    dir,
		parent: parent,
		btime:  now,
		atime:  now,
		mtime:  now,
		ctime:  now,
	}
	if dir {
		n.children = make(map[string]*node)
		n.attrs = types.FileAttributeDirectory
	} else {
		n.attrs = types.FileAttributeArchive
	}
	return n
}

func key(name string) string { return strings.ToLower(name) }

func (n *node) child(name string) *node {
	if !n.dir {
		return nil
	}
	return n.children[key(name)]
}

func (n *node) lookup(segs []string) *node {
	cur := n
	for _, seg := range segs {
		cur = cur.child(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *node) link(c *node) {
	c.parent = n
	n.children[key(c.name)] = c
}

func (n *node) unlink() {
	if n.parent == nil {
		return
	}
	if n.parent.children[key(n.name)] == n {
		delete(n.parent.children, key(n.name))
	}
	n.parent = nil
}

func (n *node) isAncestorOf(other *node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// sortedChildren returns children in case-insensitive name order.
func (n *node) sortedChildren() []*node {
	out := make([]*node, 0, len(n.children))
	for _, k := range slices.Sorted(maps.Keys(n.children)) {
		out = append(out, n.children[k])
	}
	return out
}

func (n *node) fileAttributes() uint32 {
	if n.dir {
		return n.attrs | types.FileAttributeDirectory
	}
	return n.attrs
}

func (n *node) allocationSize() uint64 {
	if n.dir {
		return 0
	}
	size := uint64(len(n.data))
	return (size + allocationUnit - 1) / allocationUnit * allocationUnit
}
