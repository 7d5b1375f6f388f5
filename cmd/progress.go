package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uilive"

	"github.com/recruit-sim/recruit-sim/sim/agent"
)

const progressInterval = 250 * time.Millisecond

// progressLine redraws one terminal line with the trainer's progress until stopped.
type progressLine struct {
	writer  *uilive.Writer
	trainer *agent.Trainer
	total   int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newProgressLine(out io.Writer, trainer *agent.Trainer, total int) *progressLine {
	w := uilive.New()
	w.Out = out
	return &progressLine{writer: w, trainer: trainer, total: total}
}

// Start begins redrawing in a background goroutine.
func (p *progressLine) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.writer.Start()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.draw()
			}
		}
	}()
}

// Stop draws the final state and releases the terminal.
func (p *progressLine) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.draw()
	p.writer.Stop()
}

func (p *progressLine) draw() {
	learner := p.trainer.Agent
	fmt.Fprintln(p.writer, renderProgress(p.trainer.Completed(), p.total, learner.Epsilon(), learner.Alpha(), learner.TableSize()))
	_ = p.writer.Flush()
}

func renderProgress(done, total int, epsilon, alpha float64, states int) string {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}
	return fmt.Sprintf("Season %d/%d (%.0f%%)  ε=%.3f  α=%.3f  states=%s",
		done, total, pct, epsilon, alpha, humanize.Comma(int64(states)))
}
