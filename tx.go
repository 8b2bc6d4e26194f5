package weave

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/taxweave/errors"
)

// Persistent is anything that can be serialized with protobuf and loaded
// back. Messages and models are declared as protobuf messages and encoded
// with Marshal and Unmarshal.
type Persistent interface {
	proto.Message
}

// Marshal returns the protobuf representation of given object.
func Marshal(obj Persistent) ([]byte, error) {
	raw, err := proto.Marshal(obj)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", obj, err)
	}
	return raw, nil
}

// Unmarshal loads the protobuf representation into given destination.
func Unmarshal(raw []byte, dst Persistent) error {
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", dst, err)
	}
	return nil
}

// Msg is message for the blockchain to take an action (Make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler that
	// corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one test does not pass and message is considered
	// invalid.
	// This validation is performed before any state is read.
	Validate() error
}

// Tx represent the data sent from the user to the application. It includes
// the actual message, along with anything else needed to pass through
// middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	// Mapping of a message to its destination is done by reflection.
	// Destination type is not known at compile time.
	if reflect.TypeOf(msg) != reflect.TypeOf(destination) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	reflect.ValueOf(destination).Elem().Set(reflect.ValueOf(msg).Elem())

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
