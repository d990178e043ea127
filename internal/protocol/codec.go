package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for frames that are not a JSON object
	// matching the schema of their type.
	ErrMalformed = errors.New("malformed message")

	// ErrUnknownType is returned for well-formed frames whose type is not
	// recognized.
	ErrUnknownType = errors.New("unknown message type")
)

// Encode serializes a message to a single JSON object without a trailing
// newline. Framing is the transport's concern.
func Encode(m Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.MessageType(), err)
	}
	return b, nil
}

// Decode parses and validates one frame. The returned value is one of
// ProblemMessage, AnswerMessage or HelloMessage.
func Decode(frame []byte) (Message, error) {
	var parsed any
	if err := json.Unmarshal(frame, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate(envelopeSchema, parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t := Type(parsed.(map[string]any)["type"].(string))
	schema := schemaFor(t)
	if schema == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if err := validate(schema, parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch t {
	case TypeProblem:
		var m ProblemMessage
		if err := json.Unmarshal(frame, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return m, nil
	case TypeAnswer:
		var m AnswerMessage
		if err := json.Unmarshal(frame, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return m, nil
	case TypeHello:
		var m HelloMessage
		if err := json.Unmarshal(frame, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}
