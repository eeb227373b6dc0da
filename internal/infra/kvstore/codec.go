package kvstore

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec serializes persisted documents.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// JSONCodec encodes documents as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.MarshalIndent(v, "", "  ") }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                       { return "json" }

// YAMLCodec encodes documents as YAML. Used for the git backend, where
// line-oriented diffs of the stored blobs are easier to read.
type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (YAMLCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
func (YAMLCodec) Name() string                       { return "yaml" }
