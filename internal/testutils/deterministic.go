// Package testutils provides deterministic generators and file helpers for devconsole testing.
// Generated values keep their production format so test transcripts stay comparable.
package testutils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter for deterministic ID generation
	idCounter uint64
	idMutex   sync.Mutex
)

// GenerateUUID returns a deterministic UUID in test mode and a random one otherwise.
// In test mode the sequence is 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, ...
func GenerateUUID(testMode bool) uuid.UUID {
	if testMode {
		return DeterministicUUID()
	}
	return uuid.New()
}

// DeterministicUUID returns the next UUID of the test sequence, keeping the version 4 layout.
func DeterministicUUID() uuid.UUID {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++

	// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
	return uuid.MustParse(fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter))
}

// ResetTestCounters restarts the deterministic sequences.
// This should only be called from test code.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}
