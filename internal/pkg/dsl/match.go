// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package dsl

func (n *Node) MatchAll() *Node {
	c := n.findOrCreateChildByName(kKeywordMatchAll)
	c.preventNull = true
	return c
}

func (n *Node) MatchPhrase(field string, value interface{}) {
	childNode := n.appendOrSetChildNode(kKeywordMatchPhrase)
	childNode.nodeMap = nodeMapT{field: &Node{leaf: value}}
}

// Match adds a match query. An empty matchType leaves the server default.
func (n *Node) Match(field string, value interface{}, matchType string) {
	fieldNode := &Node{
		nodeMap: nodeMapT{kKeywordQuery: &Node{leaf: value}},
	}
	if matchType != "" {
		fieldNode.nodeMap[kKeywordType] = &Node{leaf: matchType}
	}

	childNode := n.appendOrSetChildNode(kKeywordMatch)
	childNode.nodeMap = nodeMapT{field: fieldNode}
}

func (n *Node) QueryString(query string) {
	childNode := n.appendOrSetChildNode(kKeywordQueryString)
	childNode.nodeMap = nodeMapT{kKeywordQuery: &Node{leaf: query}}
}
