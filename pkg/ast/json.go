package ast

import "encoding/json"

// Each node serialises with a "type" discriminator ahead of its fields.

func (n *BinaryOp) MarshalJSON() ([]byte, error) {
	type alias BinaryOp
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeBinaryOp, (*alias)(n)})
}

func (n *UnaryOp) MarshalJSON() ([]byte, error) {
	type alias UnaryOp
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeUnaryOp, (*alias)(n)})
}

func (n *NumberLiteral) MarshalJSON() ([]byte, error) {
	value := "0"
	if n.Value != nil {
		value = n.Value.String()
	}
	return json.Marshal(struct {
		Type  NodeType        `json:"type"`
		Value json.RawMessage `json:"value"`
	}{NodeNumberLiteral, json.RawMessage(value)})
}

func (n *Variable) MarshalJSON() ([]byte, error) {
	type alias Variable
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeVariable, (*alias)(n)})
}

func (n *Assignment) MarshalJSON() ([]byte, error) {
	type alias Assignment
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeAssignment, (*alias)(n)})
}

func (n *NoOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeType `json:"type"`
	}{NodeNoOp})
}

func (n *StatementBlock) MarshalJSON() ([]byte, error) {
	type alias StatementBlock
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeStatementBlock, (*alias)(n)})
}
