package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type FeatureInputKind int

const (
	InputSequence FeatureInputKind = iota + 1
	InputKeyed
)

func (k FeatureInputKind) String() string {
	switch k {
	case InputSequence:
		return "sequence"
	case InputKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// FeatureInput is the caller supplied payload: either an ordered list of
// values or a mapping from feature name to value. Kind says which field is set.
type FeatureInput struct {
	Kind     FeatureInputKind
	Sequence []float64
	Keyed    map[string]float64
}

var ErrUnsupportedPayload = errors.New("payload must be a JSON array or object of numbers")

func SequenceInput(values ...float64) FeatureInput {
	return FeatureInput{Kind: InputSequence, Sequence: values}
}

func KeyedInput(values map[string]float64) FeatureInput {
	return FeatureInput{Kind: InputKeyed, Keyed: values}
}

// Len is the number of values supplied by the caller.
func (in FeatureInput) Len() int {
	switch in.Kind {
	case InputSequence:
		return len(in.Sequence)
	case InputKeyed:
		return len(in.Keyed)
	default:
		return 0
	}
}

func (in *FeatureInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrUnsupportedPayload
	}

	switch trimmed[0] {
	case '[':
		var values []float64
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedPayload, err)
		}
		*in = SequenceInput(values...)
	case '{':
		var values map[string]float64
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedPayload, err)
		}
		*in = KeyedInput(values)
	case 'n':
		// null is treated as an empty object
		*in = KeyedInput(map[string]float64{})
	default:
		return ErrUnsupportedPayload
	}
	return nil
}
