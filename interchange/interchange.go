// Package interchange encodes the inputs and outputs of state.State.Set as
// protobuf well-known types, so partial updates and change reports can cross
// process boundaries as google.protobuf.Struct values.
//
// A report is encoded as a Struct keyed by variable name where each field is
// itself a Struct:
//
//	{"b": {"newValue": 5, "oldValue": 2, "hasChanged": true}, ...}
//
// Values must lie within the Struct value domain: nil, booleans, numbers,
// strings, []byte, []any and map[string]any. Numbers decode as float64.
package interchange

import (
	"encoding/json"
	"fmt"

	"github.com/tailored-agentic-units/varstate/state"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldNewValue   = "newValue"
	fieldOldValue   = "oldValue"
	fieldHasChanged = "hasChanged"
)

// EncodePartial converts a partial update into a Struct.
func EncodePartial(partial map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(partial)
	if err != nil {
		return nil, fmt.Errorf("failed to encode partial: %w", err)
	}
	return s, nil
}

// DecodePartial converts a Struct into a partial suitable for State.Set.
// A nil Struct decodes to an empty partial.
func DecodePartial(s *structpb.Struct) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return s.AsMap()
}

// EncodeReport converts a change report into a Struct.
func EncodeReport(report state.Report) (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, len(report))
	for key, change := range report {
		entry, err := encodeChange(change)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", key, err)
		}
		fields[key] = structpb.NewStructValue(entry)
	}
	return &structpb.Struct{Fields: fields}, nil
}

func encodeChange(change state.Change) (*structpb.Struct, error) {
	newValue, err := structpb.NewValue(change.NewValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldNewValue, err)
	}

	oldValue, err := structpb.NewValue(change.OldValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldOldValue, err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldNewValue:   newValue,
		fieldOldValue:   oldValue,
		fieldHasChanged: structpb.NewBoolValue(change.HasChanged),
	}}, nil
}

// DecodeReport converts a Struct produced by EncodeReport back into a
// Report. HasChanged is taken from the encoded flag, not recomputed.
func DecodeReport(s *structpb.Struct) (state.Report, error) {
	report := make(state.Report, len(s.GetFields()))
	for key, value := range s.GetFields() {
		entry := value.GetStructValue()
		if entry == nil {
			return nil, fmt.Errorf("report entry %q is not a struct", key)
		}

		flag, ok := entry.GetFields()[fieldHasChanged]
		if !ok {
			return nil, fmt.Errorf("report entry %q has no %s", key, fieldHasChanged)
		}
		if _, isBool := flag.GetKind().(*structpb.Value_BoolValue); !isBool {
			return nil, fmt.Errorf("report entry %q: %s is not a bool", key, fieldHasChanged)
		}

		report[key] = state.Change{
			NewValue:   entry.GetFields()[fieldNewValue].AsInterface(),
			OldValue:   entry.GetFields()[fieldOldValue].AsInterface(),
			HasChanged: flag.GetBoolValue(),
		}
	}
	return report, nil
}

// MarshalReportJSON renders a report as indented JSON with keys sorted, so
// the same report always yields the same bytes. Values are restricted to the
// Struct value domain, as with EncodeReport.
func MarshalReportJSON(report state.Report) ([]byte, error) {
	s, err := EncodeReport(report)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s.AsMap(), "", "  ")
}

// UnmarshalPartialJSON parses a protobuf JSON object into a partial.
func UnmarshalPartialJSON(data []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse partial: %w", err)
	}
	return DecodePartial(&s), nil
}
