package output

import (
	"path"
	"sort"
	"strings"
)

const (
	branchMid  = "├── "
	branchEnd  = "└── "
	branchPipe = "│   "
	branchNone = "    "
)

type treeNode struct {
	name     string
	dir      bool
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dir != out[j].dir {
			return out[i].dir
		}
		return out[i].name < out[j].name
	})
	return out
}

// RenderTree renders slash-separated paths as a directory tree under root.
// A path ending in "/" is shown as a directory even when it has no entries.
// Directories sort before files.
func RenderTree(root string, paths []string) string {
	top := &treeNode{name: root, dir: true}
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		parts := strings.Split(strings.Trim(path.Clean("/"+p), "/"), "/")
		cur := top
		for i, part := range parts {
			if part == "" {
				continue
			}
			cur = cur.child(part)
			if i < len(parts)-1 || isDir {
				cur.dir = true
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(root + "/"))
	sb.WriteString("\n")
	renderChildren(&sb, top, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, n *treeNode, prefix string) {
	children := n.sorted()
	for i, c := range children {
		last := i == len(children)-1
		connector, next := branchMid, branchPipe
		if last {
			connector, next = branchEnd, branchNone
		}
		name := c.name
		if c.dir {
			name = StyleNoun.Render(name + "/")
		}
		sb.WriteString(prefix + connector + name + "\n")
		renderChildren(sb, c, prefix+next)
	}
}
