// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package dsl

func (n *Node) Query() *Node {
	return n.findOrCreateChildByName(kKeywordQuery)
}

func (n *Node) Bool() *Node {
	return n.findOrCreateChildByName(kKeywordBool)
}

func (n *Node) Must() *Node {
	return n.listChild(kKeywordMust)
}

func (n *Node) MustNot() *Node {
	return n.listChild(kKeywordMustNot)
}

func (n *Node) Filter() *Node {
	return n.listChild(kKeywordFilter)
}

func (n *Node) Should() *Node {
	return n.listChild(kKeywordShould)
}

func (n *Node) MinimumShouldMatch(v int) {
	n.Param(kKeywordMinShouldMatch, v)
}

func (n *Node) listChild(keyword string) *Node {
	childNode := n.findOrCreateChildByName(keyword)
	if childNode.nodeList == nil {
		childNode.nodeList = nodeListT{}
	}
	return childNode
}
