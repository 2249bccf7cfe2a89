// Package relayer is the off-chain companion of the settlement engine: it
// queues signed intents received from senders and submits them for
// settlement, retrying submissions that failed for ledger-level reasons
// until the intent expires. Validation outcomes are never second-guessed; a
// terminal engine error drops the submission.
package relayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/smartcontractkit/chainlink-common/pkg/services"
	"github.com/smartcontractkit/chainlink-common/pkg/utils"

	"github.com/toss-network/settlement/pkg/intent"
	"github.com/toss-network/settlement/pkg/ledger"
	"github.com/toss-network/settlement/pkg/processor"
)

var _ services.Service = &Relayer{}

// Request is one settlement submission: the resolved account list, the
// sender's signature, and the raw intent bytes the signature covers.
type Request struct {
	Accounts   []ledger.Account
	Signature  [64]byte
	IntentData []byte
}

type Relayer struct {
	Logger    logger.Logger
	Processor *processor.Processor
	Clock     ledger.Clock
	Config    Config

	SubmitChan  chan Request
	SenderStore *SenderStore
	Starter     utils.StartStopOnce
	Done        sync.WaitGroup
	Stop        chan struct{}
}

func New(lgr logger.Logger, proc *processor.Processor, clock ledger.Clock, config Config) *Relayer {
	return &Relayer{
		Logger:      logger.Named(lgr, "IntentRelayer"),
		Processor:   proc,
		Clock:       clock,
		Config:      config,
		SubmitChan:  make(chan Request, config.QueueSize),
		SenderStore: NewSenderStore(),
		Stop:        make(chan struct{}),
	}
}

func (r *Relayer) Name() string {
	return r.Logger.Name()
}

func (r *Relayer) Ready() error {
	return r.Starter.Ready()
}

func (r *Relayer) HealthReport() map[string]error {
	return map[string]error{r.Name(): r.Starter.Healthy()}
}

func (r *Relayer) Start(ctx context.Context) error {
	return r.Starter.StartOnce("IntentRelayer", func() error {
		r.Done.Add(2) // waitgroup: submit loop and retry loop
		go r.submitLoop()
		go r.retryLoop()
		return nil
	})
}

func (r *Relayer) InflightCount() (int, int) {
	return len(r.SubmitChan), r.SenderStore.GetTotalPendingCount()
}

func (r *Relayer) Close() error {
	return r.Starter.StopOnce("IntentRelayer", func() error {
		close(r.Stop)
		r.Done.Wait()
		return nil
	})
}

// Enqueue accepts a signed intent for submission. The intent bytes must
// decode and must not already be expired; the full validation sequence runs
// at settlement time.
func (r *Relayer) Enqueue(request Request) error {
	it, err := intent.Decode(request.IntentData)
	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	if it.IsExpired(r.Clock.Now()) {
		return fmt.Errorf("enqueue: intent expired at %d", it.Expiry)
	}

	select {
	case r.SubmitChan <- request:
		return nil
	default:
		return fmt.Errorf("submit queue full, could not enqueue intent")
	}
}

func (r *Relayer) submitLoop() {
	defer r.Done.Done()

	r.Logger.Debugw("submitLoop: started")

	for {
		select {
		case request := <-r.SubmitChan:
			r.submit(request)
		case <-r.Stop:
			r.Logger.Debugw("submitLoop: stopped")
			return
		}
	}
}

// submit runs one settlement attempt and decides what happens to the
// request: done, parked for retry, or dropped on a terminal error.
func (r *Relayer) submit(request Request) {
	it, err := intent.Decode(request.IntentData)
	if err != nil {
		r.Logger.Errorw("dropping undecodable intent", "err", err)
		return
	}
	sender := it.From.String()

	err = r.Processor.ProcessIntent(request.Accounts, request.Signature, request.IntentData)
	switch {
	case err == nil:
		r.Logger.Infow("intent settled", "from", sender, "amount", it.Amount)
	case errors.Is(err, processor.ErrLedgerCall):
		pending := &PendingIntent{
			Signature: request.Signature,
			Request:   request,
			Expiry:    it.Expiry,
			Attempt:   1,
		}
		if err := r.SenderStore.GetIntentStore(sender).AddPending(pending); err != nil {
			r.Logger.Errorw("failed to park intent for retry", "from", sender, "err", err)
			return
		}
		r.Logger.Debugw("parked intent for retry", "from", sender, "err", err)
	default:
		r.Logger.Errorw("intent rejected", "from", sender, "err", err)
	}
}

func (r *Relayer) retryLoop() {
	defer r.Done.Done()

	pollDuration := time.Duration(r.Config.RetryPollSecs) * time.Second
	tick := time.After(pollDuration)

	r.Logger.Debugw("retryLoop: started")

	for {
		select {
		case <-tick:
			start := time.Now()

			r.checkPending()

			remaining := pollDuration - time.Since(start)
			if remaining > 0 {
				// reset tick for the remaining time
				tick = time.After(utils.WithJitter(remaining))
			} else {
				// reset tick to fire immediately
				tick = time.After(0)
			}
		case <-r.Stop:
			r.Logger.Debugw("retryLoop: stopped")
			return
		}
	}
}

func (r *Relayer) checkPending() {
	allPending := r.SenderStore.GetAllPending()

	for sender, pendingIntents := range allPending {
		store := r.SenderStore.GetIntentStore(sender)

		for _, pending := range pendingIntents {
			if r.Clock.Now() > pending.Expiry {
				r.Logger.Infow("dropping expired intent", "from", sender, "expiry", pending.Expiry)
				if err := store.Remove(pending.Signature); err != nil {
					r.Logger.Errorw("failed to remove expired intent", "from", sender, "err", err)
				}
				continue
			}

			pending.Attempt++
			err := r.Processor.ProcessIntent(pending.Request.Accounts, pending.Request.Signature, pending.Request.IntentData)
			switch {
			case err == nil:
				r.Logger.Infow("parked intent settled", "from", sender, "attempt", pending.Attempt)
				if err := store.Remove(pending.Signature); err != nil {
					r.Logger.Errorw("failed to remove settled intent", "from", sender, "err", err)
				}
			case errors.Is(err, processor.ErrLedgerCall) && pending.Attempt < r.Config.MaxRetryAttempts:
				// still retryable, keep it parked
			default:
				r.Logger.Errorw("dropping parked intent", "from", sender, "attempt", pending.Attempt, "err", err)
				if err := store.Remove(pending.Signature); err != nil {
					r.Logger.Errorw("failed to remove dropped intent", "from", sender, "err", err)
				}
			}
		}
	}
}
