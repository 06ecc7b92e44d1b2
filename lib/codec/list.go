package codec

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// ListNode is a node of a singly linked list of integers. A nil *ListNode is the empty list.
type ListNode struct {
	Val  int
	Next *ListNode
}

// NewList links values into a list in order and returns its head (nil for no values)
func NewList(values ...int) *ListNode {
	var head, tail *ListNode
	for _, v := range values {
		node := &ListNode{Val: v}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head
}

// Values returns the values of the list from head to tail. It is safe to call on nil.
func (l *ListNode) Values() []int {
	var out []int
	for n := l; n != nil; n = n.Next {
		out = append(out, n.Val)
	}
	return out
}

// List is the rule for *ListNode: a count followed by that many integers
var List Rule[*ListNode] = listRule{}

type listRule struct{}

func (listRule) Decode(r *Reader) (*ListNode, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	var head, tail *ListNode
	for i := 0; i < n; i++ {
		v, err := Int.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "list node %d of %d", i+1, n)
		}
		node := &ListNode{Val: v}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head, nil
}

func (listRule) Encode(w *Writer, head *ListNode) {
	if w.Format().ListRender == ListChain {
		for n := head; n != nil; n = n.Next {
			if n != head {
				w.WriteString(" -> ")
			}
			w.WriteString(strconv.Itoa(n.Val))
		}
		return
	}
	values := head.Values()
	w.WriteSequence(len(values), func(i int) {
		w.WriteString(strconv.Itoa(values[i]))
	})
}
