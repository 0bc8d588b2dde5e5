package macro

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// labelFor derives a readable label from the nearest enclosing name:
// a variable, object key, assignment target, class field, function or class.
func labelFor(src []byte, n *sitter.Node) string {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Kind() {
		case "program":
			return ""
		case "variable_declarator":
			return identifierText(src, cur.ChildByFieldName("name"))
		case "pair":
			return identifierText(src, cur.ChildByFieldName("key"))
		case "assignment_expression":
			return identifierText(src, cur.ChildByFieldName("left"))
		case "field_definition":
			return identifierText(src, cur.ChildByFieldName("property"))
		case "function_declaration", "generator_function_declaration",
			"class_declaration", "method_definition":
			return identifierText(src, cur.ChildByFieldName("name"))
		case "function_expression", "class":
			if name := cur.ChildByFieldName("name"); name != nil {
				return identifierText(src, name)
			}
		}
	}
	return ""
}

// identifierText returns the name a node spells, or "" for computed names
func identifierText(src []byte, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "identifier", "property_identifier", "private_property_identifier",
		"shorthand_property_identifier_pattern":
		return text(src, n)
	case "string":
		v, _ := stringValue(src, n)
		return v
	case "member_expression":
		return identifierText(src, n.ChildByFieldName("property"))
	}
	return ""
}
