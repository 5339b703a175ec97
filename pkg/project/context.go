// pkg/project/context.go
package project

import "context"

type ctxKey string

const metadataKey ctxKey = "project.metadata"

// WithMetadata stores project metadata on the provided context.
func WithMetadata(ctx context.Context, meta *Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, metadataKey, meta)
}

// MetadataFromContext extracts project metadata from context.
func MetadataFromContext(ctx context.Context) (*Metadata, bool) {
	if ctx == nil {
		return nil, false
	}
	meta, ok := ctx.Value(metadataKey).(*Metadata)
	return meta, ok && meta != nil
}
