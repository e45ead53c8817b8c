package store

import "github.com/google/uuid"

func newEntityID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
