package qdrant

import (
	"encoding/json"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/crossmerch/semsearch/internal/catalog"
)

// payloadFromProduct converts a product document into a Qdrant payload,
// preserving the nested configuration/picture structure. The round trip
// through JSON keeps the payload field names identical to the wire names.
func payloadFromProduct(p catalog.ProductDocument) (map[string]*pb.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	payload := make(map[string]*pb.Value, len(fields))
	for k, v := range fields {
		payload[k] = toValue(v)
	}
	return payload, nil
}

func productFromPayload(payload map[string]*pb.Value) (catalog.ProductDocument, error) {
	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		fields[k] = fromValue(v)
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return catalog.ProductDocument{}, err
	}
	var p catalog.ProductDocument
	if err := json.Unmarshal(data, &p); err != nil {
		return catalog.ProductDocument{}, err
	}
	return p.Normalize(), nil
}

func toValue(v any) *pb.Value {
	switch x := v.(type) {
	case nil:
		return &pb.Value{Kind: &pb.Value_NullValue{NullValue: pb.NullValue_NULL_VALUE}}
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: x}}
	case float64:
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: x}}
	case string:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: x}}
	case []any:
		values := make([]*pb.Value, len(x))
		for i, item := range x {
			values[i] = toValue(item)
		}
		return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
	case map[string]any:
		fields := make(map[string]*pb.Value, len(x))
		for k, item := range x {
			fields[k] = toValue(item)
		}
		return &pb.Value{Kind: &pb.Value_StructValue{StructValue: &pb.Struct{Fields: fields}}}
	default:
		return &pb.Value{Kind: &pb.Value_NullValue{NullValue: pb.NullValue_NULL_VALUE}}
	}
}

func fromValue(v *pb.Value) any {
	switch k := v.GetKind().(type) {
	case *pb.Value_BoolValue:
		return k.BoolValue
	case *pb.Value_DoubleValue:
		return k.DoubleValue
	case *pb.Value_IntegerValue:
		return k.IntegerValue
	case *pb.Value_StringValue:
		return k.StringValue
	case *pb.Value_ListValue:
		values := make([]any, len(k.ListValue.GetValues()))
		for i, item := range k.ListValue.GetValues() {
			values[i] = fromValue(item)
		}
		return values
	case *pb.Value_StructValue:
		fields := make(map[string]any, len(k.StructValue.GetFields()))
		for name, item := range k.StructValue.GetFields() {
			fields[name] = fromValue(item)
		}
		return fields
	default:
		return nil
	}
}
