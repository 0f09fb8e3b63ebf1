package templates

import (
	"text/template/parse"
)

// encodeFunc is the helper appended to every output action.
const encodeFunc = "encode"

// autoEncode appends "| encode" to every action in tree that writes output,
// so values reach the page through the formatter dispatch and the output
// encoder. Actions that declare or assign variables write nothing and are
// left alone, as are actions already ending in encode.
func autoEncode(tree *parse.Tree) {
	if tree == nil || tree.Root == nil {
		return
	}
	encodeList(tree.Root)
}

func encodeList(list *parse.ListNode) {
	if list == nil {
		return
	}
	for _, node := range list.Nodes {
		encodeNode(node)
	}
}

func encodeNode(node parse.Node) {
	switch n := node.(type) {
	case *parse.ActionNode:
		encodePipe(n.Pipe)
	case *parse.ListNode:
		encodeList(n)
	case *parse.IfNode:
		encodeList(n.List)
		encodeList(n.ElseList)
	case *parse.RangeNode:
		encodeList(n.List)
		encodeList(n.ElseList)
	case *parse.WithNode:
		encodeList(n.List)
		encodeList(n.ElseList)
	}
}

func encodePipe(pipe *parse.PipeNode) {
	if pipe == nil || len(pipe.Decl) > 0 || len(pipe.Cmds) == 0 {
		return
	}
	last := pipe.Cmds[len(pipe.Cmds)-1]
	if len(last.Args) > 0 {
		if id, ok := last.Args[0].(*parse.IdentifierNode); ok && id.Ident == encodeFunc {
			return
		}
	}
	pipe.Cmds = append(pipe.Cmds, &parse.CommandNode{
		NodeType: parse.NodeCommand,
		Pos:      last.Position(),
		Args: []parse.Node{
			parse.NewIdentifier(encodeFunc).SetTree(nil).SetPos(last.Position()),
		},
	})
}
