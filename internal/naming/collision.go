package naming

import "strings"

// CollisionTracker records which input claimed each output name during a
// run. Names are compared case-insensitively to match the FAT filesystem of
// the player's SD card. It is meant for sequential use.
type CollisionTracker struct {
	owners map[string]string // folded output path -> input path that claimed it
}

// NewCollisionTracker creates a ready-to-use tracker.
func NewCollisionTracker() *CollisionTracker {
	return &CollisionTracker{owners: make(map[string]string)}
}

// Claim records that input writes output. If a different input already
// claimed the same (case-folded) output, Claim returns that input and true.
// The new input becomes the owner either way, since it is the one whose
// output survives.
func (ct *CollisionTracker) Claim(input, output string) (previous string, collided bool) {
	key := strings.ToLower(output)
	owner, exists := ct.owners[key]
	ct.owners[key] = input
	if !exists || owner == input {
		return "", false
	}
	return owner, true
}
