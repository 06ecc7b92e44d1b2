package codec

import (
	"strconv"
	"strings"
)

// nullToken marks an absent node in the level-order encoding
const nullToken = "null"

// TreeNode is a node of a binary tree of integers. A nil *TreeNode is the empty tree.
type TreeNode struct {
	Val   int
	Left  *TreeNode
	Right *TreeNode
}

// Tree is the rule for *TreeNode. The input is a count N followed by N
// level-order slots, each an integer or null:
//
//	7 3 9 20 null null 15 7
//
// The output is the same array in brackets with trailing all-null levels
// removed: [3,9,20,null,null,15,7]. The empty tree is [].
var Tree Rule[*TreeNode] = treeRule{}

type treeRule struct{}

type slot struct {
	token string
	pos   Position
}

func (treeRule) Decode(r *Reader) (*TreeNode, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	// all N slots belong to the value, even the ones no node reaches
	slots := make([]slot, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		tok, pos, err := r.next("tree slot")
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot{token: tok, pos: pos})
	}
	if n == 0 || slots[0].token == nullToken {
		return nil, nil
	}

	root, err := slots[0].node()
	if err != nil {
		return nil, err
	}
	queue := []*TreeNode{root}
	for i := 1; len(queue) > 0 && i < n; {
		parent := queue[0]
		queue = queue[1:]

		if slots[i].token != nullToken {
			if parent.Left, err = slots[i].node(); err != nil {
				return nil, err
			}
			queue = append(queue, parent.Left)
		}
		i++

		if i < n && slots[i].token != nullToken {
			if parent.Right, err = slots[i].node(); err != nil {
				return nil, err
			}
			queue = append(queue, parent.Right)
		}
		i++
	}
	return root, nil
}

func (s slot) node() (*TreeNode, error) {
	v, err := strconv.Atoi(s.token)
	if err != nil {
		return nil, NewDecodeError(ErrFormat, s.pos, s.token, "integer or null", numCause(err))
	}
	return &TreeNode{Val: v}, nil
}

func (treeRule) Encode(w *Writer, root *TreeNode) {
	if root == nil {
		w.WriteString("[]")
		return
	}
	sep := w.Format().Delimiter.treeSeparator()
	var sb strings.Builder
	sb.WriteString("[")

	level := []*TreeNode{root}
	for first := true; len(level) > 0; {
		var next []*TreeNode
		deeper := false
		for _, node := range level {
			if !first {
				sb.WriteString(sep)
			}
			first = false
			if node == nil {
				sb.WriteString(nullToken)
				continue
			}
			sb.WriteString(strconv.Itoa(node.Val))
			next = append(next, node.Left, node.Right)
			if node.Left != nil || node.Right != nil {
				deeper = true
			}
		}
		if !deeper {
			break
		}
		level = next
	}

	sb.WriteString("]")
	w.WriteString(sb.String())
}
