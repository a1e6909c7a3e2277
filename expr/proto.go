// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import (
	"github.com/tidwall/pretty"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// ToProto converts a node into a [structpb.Value], suitable for serializing
// with protojson or for handing to a YAML encoder via AsInterface.
//
// Every node becomes an object with a "kind" field; numbers and operators
// carry a "value", and operations carry "left", "op" and "right".
func ToProto(n Node) *structpb.Value {
	fields := map[string]*structpb.Value{
		"kind": structpb.NewStringValue(n.Kind().String()),
	}
	switch n := n.(type) {
	case Number:
		fields["value"] = structpb.NewNumberValue(float64(n))
	case Operator:
		fields["value"] = structpb.NewStringValue(n.String())
	case Op:
		fields["left"] = ToProto(n.Left)
		fields["op"] = structpb.NewStringValue(n.Operator.String())
		fields["right"] = ToProto(n.Right)
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

// ListToProto converts a sequence of nodes with [ToProto].
func ListToProto(nodes []Node) *structpb.Value {
	values := make([]*structpb.Value, len(nodes))
	for i, n := range nodes {
		values[i] = ToProto(n)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// MarshalJSON renders a value produced by [ToProto] or [ListToProto] as
// indented JSON with sorted keys.
func MarshalJSON(v *structpb.Value) ([]byte, error) {
	json, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(json, &pretty.Options{Indent: "  ", SortKeys: true}), nil
}

// MarshalYAML renders a value produced by [ToProto] or [ListToProto] as YAML.
func MarshalYAML(v *structpb.Value) ([]byte, error) {
	return yaml.Marshal(v.AsInterface())
}
