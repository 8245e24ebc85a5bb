package repositories

import (
	"encoding/json"
	"fmt"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Key of the badger.Sequence that hands out comment IDs
	CommentSeqKey = "seq:comment"
)

func postKey(slug string) []byte {
	return []byte(PostKeyPrefix + slug)
}

// commentPrefix is the key prefix of every comment on a post. Slugs never
// contain ':' so one post's prefix cannot match another's.
func commentPrefix(slug string) []byte {
	return []byte(CommentKeyPrefix + slug + ":")
}

// commentKey zero-pads the ID so that key order is creation order.
func commentKey(slug string, id int) []byte {
	return []byte(fmt.Sprintf("%s%s:%010d", CommentKeyPrefix, slug, id))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
