package heuristic

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Analyzers["go"] = goAnalyzer{}
}

// goAnalyzer evaluates structural pattern evidence against Go syntax trees.
type goAnalyzer struct{}

func (goAnalyzer) Name() string         { return "go" }
func (goAnalyzer) Extensions() []string { return []string{".go"} }

func (goAnalyzer) Check(pattern string, source []byte) bool {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return false
	}
	defer tree.Close()
	root := tree.RootNode()

	switch strings.ToLower(pattern) {
	case "observer":
		return goObserver(root, source)
	case "strategy":
		return goStrategy(root)
	case "facade":
		return goFacade(root, source)
	case "builder":
		return goBuilder(root, source)
	case "factory":
		return goFactory(root, source)
	case "adapter":
		return goAdapter(root, source)
	case "decorator":
		return goDecorator(root, source)
	case "singleton":
		return goSingleton(root, source)
	case "command":
		return goCommand(root, source)
	}
	return false
}

// goObserver: an exported function or method carrying a channel or callback
// in its signature, or an interface method named like an event hook.
func goObserver(root *sitter.Node, source []byte) bool {
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration":
			name := n.ChildByFieldName("name")
			if name == nil || !exported(nodeText(name, source)) {
				return
			}
			if signatureHas(n, "channel_type") || signatureHas(n, "function_type") {
				evidence = true
			}
		case "method_spec", "method_elem":
			if _, ok := observerMethods[ifaceMethodName(n, source)]; ok {
				evidence = true
			}
		}
	})
	return evidence
}

// signatureHas looks for a node type in a declaration's parameters and
// result, deliberately excluding the body.
func signatureHas(decl *sitter.Node, nodeType string) bool {
	for _, field := range []string{"parameters", "result"} {
		if part := decl.ChildByFieldName(field); part != nil {
			if part.Type() == nodeType || hasDescendant(part, nodeType) {
				return true
			}
		}
	}
	return false
}

// goStrategy: the file declares at least one interface type, regardless of
// its members.
func goStrategy(root *sitter.Node) bool {
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() == "interface_type" && n.Parent() != nil && n.Parent().Type() == "type_spec" {
			evidence = true
		}
	})
	return evidence
}

// goFacade: at least one re-export. Go has no `pub use`; its re-export
// idioms are an exported type alias to a qualified type and an exported
// var/const bound to another package's symbol.
func goFacade(root *sitter.Node, source []byte) bool {
	reexports := 0
	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "type_alias":
			name := childOfType(n, "type_identifier")
			if name != nil && exported(nodeText(name, source)) && hasDescendant(n, "qualified_type") {
				reexports++
			}
		case "var_spec", "const_spec":
			name := childOfType(n, "identifier")
			if name != nil && exported(nodeText(name, source)) && hasDescendant(n, "selector_expression") {
				reexports++
			}
		}
	})
	return reexports >= 1
}

// goBuilder: a method literally named Build, or two or more methods
// returning their own receiver type (fluent chaining).
func goBuilder(root *sitter.Node, source []byte) bool {
	found := false
	fluent := make(map[string]int)

	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "method_declaration" {
			return
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return
		}
		if strings.EqualFold(nodeText(name, source), "build") {
			found = true
			return
		}
		recv := goReceiverType(n, source)
		if recv == "" {
			return
		}
		if res := n.ChildByFieldName("result"); res != nil && typeName(res, source) == recv {
			fluent[recv]++
			if fluent[recv] >= 2 {
				found = true
			}
		}
	})

	return found
}

// goFactory: a function named like a constructor (new/create/make), or one
// whose declared return type is an interface literal.
func goFactory(root *sitter.Node, source []byte) bool {
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "function_declaration" {
			return
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return
		}
		low := snakeCase(nodeText(name, source))
		for _, prefix := range []string{"create", "make", "new"} {
			if low == prefix || strings.HasPrefix(low, prefix+"_") {
				evidence = true
				return
			}
		}
		if res := n.ChildByFieldName("result"); res != nil {
			if res.Type() == "interface_type" || hasDescendant(res, "interface_type") {
				evidence = true
			} else if typeName(res, source) == "any" {
				evidence = true
			}
		}
	})
	return evidence
}

// goAdapter: a thin wrapper (struct with one or two fields) that also has
// behavior of its own (at least one method).
func goAdapter(root *sitter.Node, source []byte) bool {
	fields := make(map[string]int)
	methods := make(map[string]int)

	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "type_spec":
			name := childOfType(n, "type_identifier")
			st := childOfType(n, "struct_type")
			if name == nil || st == nil {
				return
			}
			fields[nodeText(name, source)] = countNodes(st, "field_declaration")
		case "method_declaration":
			if recv := goReceiverType(n, source); recv != "" {
				methods[recv]++
			}
		}
	})

	for name, count := range fields {
		if count >= 1 && count <= 2 && methods[name] > 0 {
			return true
		}
	}
	return false
}

// goDecorator: a struct holding a field typed as an interface the struct
// itself also implements (shares a method name with).
func goDecorator(root *sitter.Node, source []byte) bool {
	interfaces := make(map[string]map[string]struct{}) // interface -> method names
	fieldTypes := make(map[string][]string)            // struct -> field type names
	methods := make(map[string]map[string]struct{})    // receiver -> method names

	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "type_spec":
			name := childOfType(n, "type_identifier")
			if name == nil {
				return
			}
			declName := nodeText(name, source)
			if iface := childOfType(n, "interface_type"); iface != nil {
				members := make(map[string]struct{})
				eachNode(iface, func(m *sitter.Node) {
					if m.Type() == "method_spec" || m.Type() == "method_elem" {
						if mn := ifaceMethodName(m, source); mn != "" {
							members[mn] = struct{}{}
						}
					}
				})
				interfaces[declName] = members
			} else if st := childOfType(n, "struct_type"); st != nil {
				eachNode(st, func(f *sitter.Node) {
					if f.Type() == "field_declaration" {
						eachNode(f, func(ft *sitter.Node) {
							if ft.Type() == "type_identifier" {
								fieldTypes[declName] = append(fieldTypes[declName], nodeText(ft, source))
							}
						})
					}
				})
			}
		case "method_declaration":
			recv := goReceiverType(n, source)
			name := n.ChildByFieldName("name")
			if recv == "" || name == nil {
				return
			}
			if methods[recv] == nil {
				methods[recv] = make(map[string]struct{})
			}
			methods[recv][snakeCase(nodeText(name, source))] = struct{}{}
		}
	})

	for structName, types := range fieldTypes {
		for _, ft := range types {
			members, ok := interfaces[ft]
			if !ok {
				continue
			}
			for m := range methods[structName] {
				if _, shared := members[m]; shared {
					return true
				}
			}
		}
	}
	return false
}

// goSingleton: once-initialization machinery or an instance accessor.
func goSingleton(root *sitter.Node, source []byte) bool {
	if strings.Contains(string(source), "sync.Once") {
		return true
	}
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "function_declaration" && n.Type() != "method_declaration" {
			return
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return
		}
		switch snakeCase(nodeText(name, source)) {
		case "instance", "get_instance":
			evidence = true
		}
	})
	return evidence
}

// goCommand: an interface method named like an invocation verb.
func goCommand(root *sitter.Node, source []byte) bool {
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "method_spec" && n.Type() != "method_elem" {
			return
		}
		if _, ok := commandMethods[ifaceMethodName(n, source)]; ok {
			evidence = true
		}
	})
	return evidence
}

// ifaceMethodName returns the normalized name of an interface method node.
func ifaceMethodName(spec *sitter.Node, source []byte) string {
	name := childOfType(spec, "field_identifier", "identifier")
	if name == nil {
		return ""
	}
	return snakeCase(nodeText(name, source))
}

// goReceiverType extracts the receiver type name from a method_declaration,
// unwrapping a pointer receiver.
func goReceiverType(method *sitter.Node, source []byte) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.ChildCount()); i++ {
		param := recv.Child(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		return typeName(param, source)
	}
	return ""
}

// typeName digs the underlying type identifier out of a type or parameter
// node, unwrapping pointers and generic instantiations.
func typeName(node *sitter.Node, source []byte) string {
	if node.Type() == "type_identifier" {
		return nodeText(node, source)
	}
	name := ""
	eachNode(node, func(n *sitter.Node) {
		if name == "" && n.Type() == "type_identifier" {
			name = nodeText(n, source)
		}
	})
	return name
}

func countNodes(root *sitter.Node, nodeType string) int {
	count := 0
	eachNode(root, func(n *sitter.Node) {
		if n.Type() == nodeType {
			count++
		}
	})
	return count
}
