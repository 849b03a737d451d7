package model

import "time"

// Object is a stored file in a bucket.
type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
