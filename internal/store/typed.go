package store

import (
	"context"
	"fmt"
)

// All decodes every record of a collection into T.
func All[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raws, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := codec.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// One decodes a single record into T.
func One[T any](ctx context.Context, s Store, collection, id string) (T, error) {
	var v T
	raw, err := s.Get(ctx, collection, id)
	if err != nil {
		return v, err
	}
	if err := codec.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s record %s: %w", collection, id, err)
	}
	return v, nil
}
