package models

import "github.com/google/uuid"

// assignID fills a zero primary key before insert. Postgres would happily use
// gen_random_uuid(), but the same models also run against SQLite.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
