package heuristic

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

func init() {
	Analyzers["rust"] = rustAnalyzer{}
}

// rustAnalyzer evaluates structural pattern evidence against Rust syntax
// trees, with text indicators for constructs (channel endpoints, boxed
// closures) that read more reliably as source fragments than as node shapes.
type rustAnalyzer struct{}

func (rustAnalyzer) Name() string         { return "rust" }
func (rustAnalyzer) Extensions() []string { return []string{".rs"} }

func (rustAnalyzer) Check(pattern string, source []byte) bool {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return false
	}
	defer tree.Close()
	root := tree.RootNode()

	switch strings.ToLower(pattern) {
	case "observer":
		return rustObserver(root, source)
	case "strategy":
		return hasDescendant(root, "trait_item")
	case "facade":
		return rustFacade(root, source)
	case "builder":
		return rustBuilder(root, source)
	case "factory":
		return rustFactory(root, source)
	case "adapter":
		return rustAdapter(root)
	case "decorator":
		return rustDecorator(root, source)
	case "singleton":
		return rustSingleton(source)
	case "command":
		return rustTraitMethodIn(root, source, commandMethods)
	}
	return false
}

var rustObserverIndicators = []string{
	"mpsc::Sender", "mpsc::Receiver", "mpsc::channel",
	"crossbeam_channel",
	"broadcast::Sender", "watch::Sender", "watch::Receiver",
	"Box<dyn Fn", "Box<dyn FnMut", "Box<dyn FnOnce", "Arc<dyn Fn",
	"impl Fn(", "impl FnMut(", "impl FnOnce(",
	"-> Receiver", "-> Sender",
}

func rustObserver(root *sitter.Node, source []byte) bool {
	text := string(source)
	for _, indicator := range rustObserverIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return rustTraitMethodIn(root, source, observerMethods)
}

// rustFacade: at least one `pub use` re-export, or two or more `pub mod`
// submodule declarations.
func rustFacade(root *sitter.Node, source []byte) bool {
	pubUse := 0
	pubMod := 0
	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "use_declaration":
			if childOfType(n, "visibility_modifier") != nil {
				pubUse++
			}
		case "mod_item":
			if childOfType(n, "visibility_modifier") != nil {
				pubMod++
			}
		}
	})
	return pubUse >= 1 || pubMod >= 2
}

// rustBuilder: an impl block with a method named `build`, or two or more
// methods returning Self.
func rustBuilder(root *sitter.Node, source []byte) bool {
	found := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "impl_item" {
			return
		}
		selfReturns := 0
		eachNode(n, func(m *sitter.Node) {
			if m.Type() != "function_item" {
				return
			}
			if name := m.ChildByFieldName("name"); name != nil && nodeText(name, source) == "build" {
				found = true
			}
			if ret := m.ChildByFieldName("return_type"); ret != nil && strings.Contains(nodeText(ret, source), "Self") {
				selfReturns++
			}
		})
		if selfReturns >= 2 {
			found = true
		}
	})
	return found
}

var rustFactoryIndicators = []string{
	"-> Box<dyn", "-> Arc<dyn", "-> Rc<dyn",
	"fn create(", "fn create_", "fn make(", "fn make_",
}

func rustFactory(root *sitter.Node, source []byte) bool {
	text := string(source)
	for _, indicator := range rustFactoryIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "function_item" {
			return
		}
		if ret := n.ChildByFieldName("return_type"); ret != nil {
			text := nodeText(ret, source)
			if strings.Contains(text, "dyn ") || strings.HasPrefix(text, "impl ") {
				evidence = true
			}
		}
	})
	return evidence
}

// rustAdapter: a thin wrapper struct (one or two named fields) alongside a
// trait implementation.
func rustAdapter(root *sitter.Node) bool {
	wrapper := false
	traitImpl := false
	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "struct_item":
			if fields := childOfType(n, "field_declaration_list"); fields != nil {
				count := countNodes(fields, "field_declaration")
				if count >= 1 && count <= 2 {
					wrapper = true
				}
			}
		case "impl_item":
			if n.ChildByFieldName("trait") != nil {
				traitImpl = true
			}
		}
	})
	return wrapper && traitImpl
}

// rustDecorator: a struct field holding a boxed trait object in a file that
// also implements a trait.
func rustDecorator(root *sitter.Node, source []byte) bool {
	text := string(source)
	if !strings.Contains(text, "Box<dyn") && !strings.Contains(text, "Arc<dyn") {
		return false
	}

	dynField := false
	traitImpl := false
	eachNode(root, func(n *sitter.Node) {
		switch n.Type() {
		case "field_declaration":
			ft := nodeText(n, source)
			if strings.Contains(ft, "Box<dyn") || strings.Contains(ft, "Arc<dyn") {
				dynField = true
			}
		case "impl_item":
			if n.ChildByFieldName("trait") != nil {
				traitImpl = true
			}
		}
	})
	return dynField && traitImpl
}

var rustSingletonIndicators = []string{
	"lazy_static!", "once_cell::sync::Lazy", "OnceLock", "OnceCell",
	"static ref ", "fn instance()", "fn get_instance()",
}

func rustSingleton(source []byte) bool {
	text := string(source)
	for _, indicator := range rustSingletonIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

// rustTraitMethodIn reports whether any trait declares a method whose name
// is in the recognized set.
func rustTraitMethodIn(root *sitter.Node, source []byte, names map[string]struct{}) bool {
	evidence := false
	eachNode(root, func(n *sitter.Node) {
		if n.Type() != "trait_item" {
			return
		}
		eachNode(n, func(m *sitter.Node) {
			if m.Type() != "function_item" && m.Type() != "function_signature_item" {
				return
			}
			if name := m.ChildByFieldName("name"); name != nil {
				if _, ok := names[nodeText(name, source)]; ok {
					evidence = true
				}
			}
		})
	})
	return evidence
}
