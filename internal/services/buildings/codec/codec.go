// Package codec maps buildings to and from their serialized record form.
//
// A Record is an in-memory field map with a single recognized key, "name".
// It is what the server hands to clients and what crosses the gRPC wire as a
// protobuf Struct.
package codec

import (
	"fmt"

	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

// NameKey is the record field holding the building name.
const NameKey = "name"

// Record is the serialized form of one building.
type Record map[string]any

// Serializer turns a building into its record form.
type Serializer interface {
	Serialize(building domain.Building) Record
}

// SerializerFunc adapts a function to the Serializer interface.
type SerializerFunc func(building domain.Building) Record

// Serialize implements Serializer.
func (fn SerializerFunc) Serialize(building domain.Building) Record {
	return fn(building)
}

// Deserializer turns a record back into a building. It reports false when the
// record does not describe a building.
type Deserializer interface {
	Deserialize(record Record) (domain.Building, bool)
}

// DeserializerFunc adapts a function to the Deserializer interface.
type DeserializerFunc func(record Record) (domain.Building, bool)

// Deserialize implements Deserializer.
func (fn DeserializerFunc) Deserialize(record Record) (domain.Building, bool) {
	return fn(record)
}

// NameSerializer writes only the building name.
var NameSerializer Serializer = SerializerFunc(func(building domain.Building) Record {
	return Record{NameKey: building.Name}
})

// NameDeserializer reads the building name, rejecting records where it is
// missing or not a string.
var NameDeserializer Deserializer = DeserializerFunc(func(record Record) (domain.Building, bool) {
	raw, ok := record[NameKey]
	if !ok {
		return domain.Building{}, false
	}
	name, ok := raw.(string)
	if !ok {
		return domain.Building{}, false
	}
	return domain.Building{Name: name}, true
})

// SerializeAll maps every building through serializer, keeping order.
// A nil serializer means NameSerializer.
func SerializeAll(serializer Serializer, buildings []domain.Building) []Record {
	if serializer == nil {
		serializer = NameSerializer
	}
	records := make([]Record, 0, len(buildings))
	for _, building := range buildings {
		records = append(records, serializer.Serialize(building))
	}
	return records
}

// DeserializeAll maps every record through deserializer, keeping order and
// dropping records that do not deserialize. A nil deserializer means
// NameDeserializer.
func DeserializeAll(deserializer Deserializer, records []Record) []domain.Building {
	if deserializer == nil {
		deserializer = NameDeserializer
	}
	buildings := make([]domain.Building, 0, len(records))
	for _, record := range records {
		building, ok := deserializer.Deserialize(record)
		if !ok {
			continue
		}
		buildings = append(buildings, building)
	}
	return buildings
}

// ToListValue converts records into a protobuf list of structs.
func ToListValue(records []Record) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(records))}
	for idx, record := range records {
		st, err := structpb.NewStruct(record)
		if err != nil {
			return nil, fmt.Errorf("encode record %d: %w", idx, err)
		}
		list.Values = append(list.Values, structpb.NewStructValue(st))
	}
	return list, nil
}

// FromListValue converts a protobuf list back into records. Entries that are
// not structs become empty records so the deserializer drops them.
func FromListValue(list *structpb.ListValue) []Record {
	values := list.GetValues()
	records := make([]Record, 0, len(values))
	for _, value := range values {
		st := value.GetStructValue()
		if st == nil {
			records = append(records, Record{})
			continue
		}
		records = append(records, Record(st.AsMap()))
	}
	return records
}
