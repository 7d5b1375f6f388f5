// Package sim models a collegiate swimming conference: swimmers, team
// rosters and budgets, the yearly recruit pool, the scholarship market and
// the championship meet.
//
// # Reading Guide
//
// Start with these files to understand one season:
//   - swimmer.go: recruit attributes, projected points and yearly aging
//   - team.go: budgets, rosters, bids and year advancement
//   - market.go: how unsigned recruits pick among market teams
//   - meet.go: event ranking, tie-breaking and popularity changes
//
// conference.go ties them together behind one PartitionedRNG so that a run
// is reproducible from its seed.
//
// # Sub-packages
//
//   - sim/agent/: the SARSA learner, heuristic bid policies and the Trainer loop
//   - sim/trace/: optional per-decision records and their summary
//   - sim/telemetry/: Prometheus metrics fed by the Trainer's observers
//   - sim/history/: SQLite store for season summaries across runs
package sim
