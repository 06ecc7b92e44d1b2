package solutions

import (
	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
)

func init() {
	harness.Register("reverse-list", harness.Func1(ReverseList))
	harness.Register("merge-lists", harness.Func2(MergeLists))
	harness.Register("invert-tree", harness.Func1(InvertTree))
	harness.Register("max-depth", harness.Func1(MaxDepth))
	harness.Register("level-sums", harness.Func1(LevelSums))
}

// ReverseList reverses the list in place and returns the new head
func ReverseList(head *codec.ListNode) *codec.ListNode {
	var prev *codec.ListNode
	for head != nil {
		next := head.Next
		head.Next = prev
		prev, head = head, next
	}
	return prev
}

// MergeLists merges two sorted lists into one sorted list
func MergeLists(a, b *codec.ListNode) *codec.ListNode {
	dummy := &codec.ListNode{}
	tail := dummy
	for a != nil && b != nil {
		if a.Val <= b.Val {
			tail.Next, a = a, a.Next
		} else {
			tail.Next, b = b, b.Next
		}
		tail = tail.Next
	}
	if a != nil {
		tail.Next = a
	} else {
		tail.Next = b
	}
	return dummy.Next
}

// InvertTree mirrors the tree in place
func InvertTree(root *codec.TreeNode) *codec.TreeNode {
	if root != nil {
		root.Left, root.Right = InvertTree(root.Right), InvertTree(root.Left)
	}
	return root
}

// MaxDepth returns the number of nodes on the longest root to leaf path
func MaxDepth(root *codec.TreeNode) int {
	if root == nil {
		return 0
	}
	return 1 + max(MaxDepth(root.Left), MaxDepth(root.Right))
}

// LevelSums maps every depth (root = 0) to the sum of its values
func LevelSums(root *codec.TreeNode) map[int]int {
	sums := make(map[int]int)
	var walk func(n *codec.TreeNode, depth int)
	walk = func(n *codec.TreeNode, depth int) {
		if n == nil {
			return
		}
		sums[depth] += n.Val
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(root, 0)
	return sums
}
