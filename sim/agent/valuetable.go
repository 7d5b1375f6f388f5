package agent

import "github.com/recruit-sim/recruit-sim/sim"

// NumActions is the size of the bid action set, one per sim.ScholarshipLevels entry.
const NumActions = 6

// ActionValues holds one value per bid action, indexed like sim.ScholarshipLevels.
type ActionValues [NumActions]float64

// ActionBid maps an action index to its bid amount.
func ActionBid(action int) int {
	return sim.ScholarshipLevels[action]
}

// ValueTable is the tabular action-value function. Unseen states read as all
// zeros and are materialized on first write; entries are never removed.
//
// ValueTable is not safe for concurrent use; Agent serializes access.
type ValueTable struct {
	values map[StateKey]*ActionValues
}

// NewValueTable creates an empty table.
func NewValueTable() *ValueTable {
	return &ValueTable{values: make(map[StateKey]*ActionValues)}
}

// Get returns the action values for s, zero-valued when s is unseen.
func (vt *ValueTable) Get(s StateKey) ActionValues {
	if v, ok := vt.values[s]; ok {
		return *v
	}
	return ActionValues{}
}

// entry returns the mutable row for s, creating it on first use.
func (vt *ValueTable) entry(s StateKey) *ActionValues {
	v, ok := vt.values[s]
	if !ok {
		v = &ActionValues{}
		vt.values[s] = v
	}
	return v
}

// Update applies the temporal-difference step
// Q[s][a] += alpha × (r + gamma×Q[s'][a'] − Q[s][a]).
func (vt *ValueTable) Update(tr Transition, alpha, gamma float64) {
	next := vt.entry(tr.Next)[tr.NextAction]
	row := vt.entry(tr.State)
	row[tr.Action] += alpha * (tr.Reward + gamma*next - row[tr.Action])
}

// Len returns the number of materialized states.
func (vt *ValueTable) Len() int {
	return len(vt.values)
}
