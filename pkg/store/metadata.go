package store

import (
	"dario.cat/mergo"
)

// MergeMetadata merges incoming into existing, creating keys that don't exist
// and overwriting those that do. Nested maps are merged recursively.
func MergeMetadata(
	existing map[string]interface{},
	incoming map[string]interface{},
) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	if len(incoming) == 0 {
		return merged, nil
	}
	if err := mergo.Merge(&merged, incoming, mergo.WithOverride); err != nil {
		return nil, NewStorageError("failed to merge metadata", err)
	}
	return merged, nil
}
