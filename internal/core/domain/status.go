package domain

import (
	"encoding/json"
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

// transitionTable lists, for each state, the states it may move to.
type transitionTable[S comparable] map[S]map[S]struct{}

// anyToAny builds a table where every known state reaches every other.
// The backend does not constrain these workflows.
func anyToAny[S comparable](states []S) transitionTable[S] {
	table := make(transitionTable[S], len(states))
	for _, from := range states {
		table[from] = make(map[S]struct{}, len(states))
		for _, to := range states {
			table[from][to] = struct{}{}
		}
	}
	return table
}

// allowed treats an unknown current state as free to move to any known one,
// since the stored value comes from the backend unchecked.
func allowed[S comparable](table transitionTable[S], from, to S) bool {
	if _, known := table[to]; !known {
		return false
	}
	next, ok := table[from]
	if !ok {
		return true
	}
	_, ok = next[to]
	return ok
}

func optionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v := json_types.ParseInt(s)
	return &v
}

func optionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v := json_types.ParseFloat(s)
	return &v
}

func parseIntOrZero(s string) int {
	return json_types.ParseInt(s)
}

func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
