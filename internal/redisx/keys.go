package redisx

import (
	"fmt"
	"time"
)

const (
	// product:{id} -> JSON product, read-through cache of the product service
	keyProduct = "product:%d"

	// order:{id} -> JSON order, read-through cache of the order service
	keyOrder = "order:%d"

	// dedup:{service}:{event_id}
	keyDedup = "dedup:%s:%s"
)

var (
	TTLProduct = time.Minute
	TTLOrder   = 5 * time.Minute
	TTLDedup   = 48 * time.Hour
)

func ProductKey(id int64) string { return fmt.Sprintf(keyProduct, id) }

func OrderKey(id int64) string { return fmt.Sprintf(keyOrder, id) }

func DedupKey(service, eventID string) string { return fmt.Sprintf(keyDedup, service, eventID) }
