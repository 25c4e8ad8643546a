// Package storage stores uploaded product images and hands back the public
// relative URL recorded on the product row. The catalogue core only depends
// on the ImageStore capability; whether bytes land on the local file system
// or in S3 is a deployment choice.
package storage

import "context"

// ImageStore persists image bytes under a unique name and returns the
// public URL to record on the product.
type ImageStore interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
}
