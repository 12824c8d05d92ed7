// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Locker serializes operations on one key across requests and instances.
type Locker interface {
	// TryLock acquires key without waiting. acquired is false when someone else holds it.
	// release must be called once the protected operation is done.
	TryLock(ctx context.Context, key string) (release func(), acquired bool, err error)
}
