package agent

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/recruit-sim/recruit-sim/sim"
	"github.com/recruit-sim/recruit-sim/sim/trace"
)

// Observer receives training progress. Calls arrive on the training
// goroutine, in order.
type Observer interface {
	ObserveBid(team string, bid int, signed bool, reward float64)
	ObserveSeason(summary sim.SeasonSummary, tableSize int)
}

// pendingBid is a successful learner bid awaiting its season-end reward.
type pendingBid struct {
	team    *sim.Team
	recruit *sim.Swimmer
	state   StateKey
	action  int
}

// Trainer runs seasons of a conference, letting policy-driven teams bid
// first and handing every unsigned recruit to the market.
type Trainer struct {
	Conference *sim.Conference
	Agent      *Agent

	// Trace, when enabled, receives every bid decision and market resolution.
	Trace *trace.DecisionTrace

	policies  map[*sim.Team]BidPolicy
	observers []Observer
	history   *sim.History
	completed atomic.Int64
}

// NewTrainer builds the conference described by cfg together with its
// learner. Every sarsa team shares the one Agent.
func NewTrainer(cfg sim.Config) (*Trainer, error) {
	conf, err := sim.NewConference(cfg)
	if err != nil {
		return nil, err
	}
	learner := New(cfg.Agent, conf.RNG.ForSubsystem(sim.SubsystemAgent))
	heuristic := conf.RNG.ForSubsystem(sim.SubsystemHeuristic)

	names := make([]string, len(conf.Teams))
	policies := make(map[*sim.Team]BidPolicy)
	for i, t := range conf.Teams {
		names[i] = t.Name
		if IsPolicyStrategy(t.Strategy) {
			policies[t] = NewBidPolicy(t.Strategy, learner, heuristic)
		}
	}

	return &Trainer{
		Conference: conf,
		Agent:      learner,
		policies:   policies,
		history:    sim.NewHistory(names),
	}, nil
}

// AddObserver registers o for bid and season callbacks.
func (tr *Trainer) AddObserver(o Observer) {
	tr.observers = append(tr.observers, o)
}

// History returns the per-team series recorded so far.
func (tr *Trainer) History() *sim.History {
	return tr.history
}

// Completed returns the number of seasons finished. Safe to call from any goroutine.
func (tr *Trainer) Completed() int {
	return int(tr.completed.Load())
}

// Train runs seasons one after another. ctx is checked between seasons; on
// cancellation the summaries completed so far are returned with ctx.Err().
func (tr *Trainer) Train(ctx context.Context, seasons int) ([]sim.SeasonSummary, error) {
	summaries := make([]sim.SeasonSummary, 0, seasons)
	for i := 0; i < seasons; i++ {
		if err := ctx.Err(); err != nil {
			logrus.Debugf("training cancelled after %d seasons", len(summaries))
			return summaries, err
		}
		summaries = append(summaries, tr.RunSeason())
	}
	return summaries, nil
}

// RunSeason plays one full year: recruiting, the meet, season-end learning,
// roster advancement and parameter decay.
func (tr *Trainer) RunSeason() sim.SeasonSummary {
	conf := tr.Conference
	season := conf.Season + 1

	var policyTeams []*sim.Team
	for _, t := range conf.Teams {
		if _, ok := tr.policies[t]; ok {
			policyTeams = append(policyTeams, t)
		}
	}
	marketTeams := conf.TeamsWithStrategy(sim.StrategyMarket)

	signings := make(map[string]int, len(conf.Teams))
	var pending []pendingBid

	claim := func(s *sim.Swimmer) bool {
		for _, t := range policyTeams {
			if t.Budget <= 0 {
				continue
			}
			signed, p := tr.decide(season, t, s)
			if p != nil {
				pending = append(pending, *p)
			}
			if signed {
				signings[t.Name]++
				return true
			}
		}
		return false
	}
	for _, out := range conf.Market.RunRound(conf.Pool, marketTeams, claim) {
		if out.Signed {
			signings[out.Winner.Name]++
		}
		tr.recordMarket(season, out)
	}

	result := conf.RunMeet()
	tr.replaySeason(season, pending, result)

	graduates := conf.AdvanceYear()
	tr.Agent.Decay()

	summary := sim.NewSeasonSummary(season, conf.Teams, result, signings, tr.Agent.Alpha(), tr.Agent.Epsilon())
	tr.history.Record(summary)
	tableSize := tr.Agent.TableSize()
	for _, o := range tr.observers {
		o.ObserveSeason(summary, tableSize)
	}
	tr.completed.Add(1)

	logrus.Debugf("season %d: standings %v, %d learner signings, %d graduates, ε=%.3f α=%.3f, %d states",
		season, summary.Standings, len(pending), graduates, summary.Epsilon, summary.Alpha, tableSize)
	return summary
}

// decide lets t's policy bid on s. Learner decisions are fed back into the
// agent immediately; a successful learner bid is also returned for the
// season-end replay.
func (tr *Trainer) decide(season int, t *sim.Team, s *sim.Swimmer) (bool, *pendingBid) {
	conf := tr.Conference
	policy := tr.policies[t]

	state := NewStateKey(t, s, conf.Scoring)
	d := policy.Choose(state, t, s)
	bid := d.Bid()
	input := NewRewardInput(t, s, bid, conf.Scoring)

	signed := bid > 0 && t.MakeBid(s, bid)
	if signed {
		conf.Pool.Remove(s)
	}

	reward := 0.0
	var p *pendingBid
	if t.Strategy == sim.StrategySARSA {
		reward = Reward(input)
		tr.learn(state, d.Action, reward, t, s)
		if signed {
			p = &pendingBid{team: t, recruit: s, state: state, action: d.Action}
		}
	}

	tr.recordBid(trace.BidRecord{
		Season:    season,
		Team:      t.Name,
		Strategy:  t.Strategy,
		RecruitID: s.ID.String(),
		Ask:       s.Scholarship,
		Bid:       bid,
		Explored:  d.Explored,
		Signed:    signed,
		Reward:    reward,
		Phase:     trace.PhaseDecision,
	})
	return signed, p
}

// learn pushes the on-policy transition from (state, action) to t's
// current view of s and the action the learner would take there.
func (tr *Trainer) learn(state StateKey, action int, reward float64, t *sim.Team, s *sim.Swimmer) {
	next := NewStateKey(t, s, tr.Conference.Scoring)
	nextAction := tr.Agent.Choose(next, t, s).Action
	tr.Agent.Update(Transition{
		State:      state,
		Action:     action,
		Reward:     reward,
		Next:       next,
		NextAction: nextAction,
	})
}

// replaySeason feeds every successful learner bid back with the reward
// recomputed against the season-end team and its meet standing.
func (tr *Trainer) replaySeason(season int, pending []pendingBid, result *sim.MeetResult) {
	teams := len(tr.Conference.Teams)
	for _, p := range pending {
		bid := ActionBid(p.action)
		input := NewRewardInput(p.team, p.recruit, bid, tr.Conference.Scoring).
			WithStanding(result.RankOf(p.team.Name), teams)
		reward := Reward(input)
		tr.learn(p.state, p.action, reward, p.team, p.recruit)

		tr.recordBid(trace.BidRecord{
			Season:    season,
			Team:      p.team.Name,
			Strategy:  p.team.Strategy,
			RecruitID: p.recruit.ID.String(),
			Ask:       p.recruit.Scholarship,
			Bid:       bid,
			Signed:    true,
			Reward:    reward,
			Phase:     trace.PhaseSeasonEnd,
		})
	}
}

func (tr *Trainer) recordBid(rec trace.BidRecord) {
	if rec.Phase == trace.PhaseDecision {
		for _, o := range tr.observers {
			o.ObserveBid(rec.Team, rec.Bid, rec.Signed, rec.Reward)
		}
	}
	if tr.Trace.Enabled() {
		tr.Trace.RecordBid(rec)
	}
}

func (tr *Trainer) recordMarket(season int, out sim.MarketOutcome) {
	for _, o := range tr.observers {
		if out.Winner != nil {
			o.ObserveBid(out.Winner.Name, out.Bid, out.Signed, 0)
		}
	}
	if !tr.Trace.Enabled() {
		return
	}
	rec := trace.MarketRecord{
		Season:     season,
		RecruitID:  out.Recruit.ID.String(),
		Offers:     len(out.Offers),
		Bid:        out.Bid,
		Signed:     out.Signed,
		Overridden: out.Overridden,
	}
	if out.Winner != nil {
		rec.Winner = out.Winner.Name
	}
	tr.Trace.RecordMarket(rec)
}
