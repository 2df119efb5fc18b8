// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package dsl

// GeoPoint renders as {"lat": .., "lon": ..}.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (n *Node) GeoBoundingBox(field string, topLeft, bottomRight GeoPoint) {
	childNode := n.appendOrSetChildNode(kKeywordGeoBoundingBox)
	childNode.nodeMap = nodeMapT{field: &Node{
		nodeMap: nodeMapT{
			kKeywordTopLeft:     &Node{leaf: topLeft},
			kKeywordBottomRight: &Node{leaf: bottomRight},
		},
	}}
}

func (n *Node) GeoPolygon(field string, points ...GeoPoint) {
	childNode := n.appendOrSetChildNode(kKeywordGeoPolygon)
	childNode.nodeMap = nodeMapT{field: &Node{
		nodeMap: nodeMapT{
			kKeywordPoints: &Node{leaf: points},
		},
	}}
}

// ScriptParams adds a script clause carrying only params, the shape of
// scripted field filters.
func (n *Node) ScriptParams(params map[string]interface{}) {
	childNode := n.appendOrSetChildNode(kKeywordScript)
	childNode.nodeMap = nodeMapT{kKeywordScript: &Node{
		nodeMap: nodeMapT{kKeywordParams: &Node{leaf: params}},
	}}
}
