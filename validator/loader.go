/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/trustbloc/sdjwt-engine/sdjwterr"
	"github.com/trustbloc/sdjwt-engine/tree"
)

// rawNode is the wire shape a schema description (already unmarshalled from
// JSON or YAML into map[string]interface{}) decodes into, one level at a
// time, before LoadSchema recurses into Fields/Element.
type rawNode struct {
	Disclosability tree.Disclosability    `mapstructure:"disclosability"`
	Type           string                 `mapstructure:"type"`
	Fields         map[string]interface{} `mapstructure:"fields"`
	Element        map[string]interface{} `mapstructure:"element"`
}

// disclosabilityHook converts the wire strings "always"/"never" into
// tree.Disclosability during mapstructure decoding, using mapstructure's
// decode-hook mechanism.
func disclosabilityHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(tree.Disclosability(0)) {
			return data, nil
		}

		s, ok := data.(string)
		if !ok {
			return data, nil
		}

		switch strings.ToLower(s) {
		case "always", "always-selectively":
			return tree.AlwaysSelectively, nil
		case "never", "never-selectively":
			return tree.NeverSelectively, nil
		default:
			return nil, fmt.Errorf("unknown disclosability %q", s)
		}
	}
}

func decodeRawNode(source map[string]interface{}) (rawNode, error) {
	var n rawNode

	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &n,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       disclosabilityHook(),
	})
	if err != nil {
		return rawNode{}, sdjwterr.New(sdjwterr.KindInputMalformed, "validator.decodeRawNode", err)
	}

	if err := d.Decode(source); err != nil {
		return rawNode{}, sdjwterr.New(sdjwterr.KindInputMalformed, "validator.decodeRawNode", err)
	}

	return n, nil
}

// LoadSchema decodes an external schema description into the typed Schema
// tree LoadSchema's caller then hands to Validate. The description's shape
// per node is `{"disclosability": "always"|"never", "type": "id"|"object"|"array",
// "fields": {...}, "element": {...}}`.
func LoadSchema(description map[string]interface{}) (SchemaObject, error) {
	out := make(SchemaObject, len(description))

	for name, v := range description {
		child, ok := v.(map[string]interface{})
		if !ok {
			return nil, sdjwterr.Malformed("validator.LoadSchema", "schema node %q must be an object", name)
		}

		node, err := loadNode(name, child)
		if err != nil {
			return nil, err
		}

		out[name] = node
	}

	return out, nil
}

func loadNode(path string, source map[string]interface{}) (SchemaNode, error) {
	if _, ok := source["disclosability"]; !ok {
		return SchemaNode{}, sdjwterr.Malformed("validator.loadNode", "schema node %q missing disclosability", path)
	}

	raw, err := decodeRawNode(source)
	if err != nil {
		return SchemaNode{}, err
	}

	tag := raw.Disclosability

	switch strings.ToLower(raw.Type) {
	case "id", "":
		return SchemaNode{Disclosability: tag, Kind: tree.KindID}, nil
	case "object":
		fields, err := LoadSchema(raw.Fields)
		if err != nil {
			return SchemaNode{}, err
		}

		return SchemaNode{Disclosability: tag, Kind: tree.KindObject, Object: fields}, nil
	case "array":
		if raw.Element == nil {
			return SchemaNode{}, sdjwterr.Malformed("validator.loadNode", "array schema %q missing element template", path)
		}

		elem, err := loadNode(path+"[]", raw.Element)
		if err != nil {
			return SchemaNode{}, err
		}

		return SchemaNode{Disclosability: tag, Kind: tree.KindArray, Element: &elem}, nil
	default:
		return SchemaNode{}, sdjwterr.Malformed("validator.loadNode", "schema node %q has unknown type %q", path, raw.Type)
	}
}
