package resolver

import (
	"github.com/neuronlabs/includes/codec"
)

// Reserved keys of the resolved Object.
const (
	KeyID         = "id"
	KeyType       = "type"
	KeyAttributes = "attributes"
)

// Object is the resolved resource. It contains the resource 'id' and 'type', the flattened attributes,
// the original 'attributes' object and the resolved relationships.
// A bare identifier Object contains only the 'type' and 'id' keys.
type Object map[string]interface{}

// Identifier creates the bare identifier Object.
func Identifier(id codec.ResourceIdentifier) Object {
	return Object{KeyType: id.Type, KeyID: id.ID}
}

// ID gets the object 'id'.
func (o Object) ID() string {
	id, _ := o[KeyID].(string)
	return id
}

// Type gets the object 'type'.
func (o Object) Type() string {
	typ, _ := o[KeyType].(string)
	return typ
}

// Identifier gets the resource identifier of the object.
func (o Object) Identifier() codec.ResourceIdentifier {
	return codec.ResourceIdentifier{Type: o.Type(), ID: o.ID()}
}

// Attributes gets the original attributes of the resolved resource.
func (o Object) Attributes() map[string]interface{} {
	attrs, _ := o[KeyAttributes].(map[string]interface{})
	return attrs
}

// IsResolved checks if the object contains more fields than just the {type, id} pair.
func (o Object) IsResolved() bool {
	return len(o) > 2
}

// One gets the to-one relationship value with given 'name'. Returns nil if the value is not an Object.
func (o Object) One(name string) Object {
	one, _ := o[name].(Object)
	return one
}

// Many gets the to-many relationship values with given 'name'. Returns nil if the value is not an Object sequence.
func (o Object) Many(name string) []Object {
	many, _ := o[name].([]Object)
	return many
}

// IsResolved checks if provided value is a resolved Object.
func IsResolved(v interface{}) bool {
	o, ok := v.(Object)
	return ok && o.IsResolved()
}

// IsIdentifier checks if provided value is a bare identifier Object.
func IsIdentifier(v interface{}) bool {
	o, ok := v.(Object)
	if !ok || len(o) != 2 {
		return false
	}
	_, hasType := o[KeyType]
	_, hasID := o[KeyID]
	return hasType && hasID
}
