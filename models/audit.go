package models

import "time"

// AuditEntry is one line of the action trail. Written after every successful
// mutation; never blocks the mutation that triggered it.
type AuditEntry struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Action    string    `json:"action" bson:"action" db:"action"`
	ActorID   int64     `json:"actor_id" bson:"actor_id" db:"actor_id"`
	ActorName string    `json:"actor_name" bson:"actor_name" db:"actor_name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
