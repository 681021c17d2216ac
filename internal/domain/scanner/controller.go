package scanner

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type State int

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Decoder is the camera-backed code reader. Start acquires the stream and
// returns a channel carrying successfully decoded codes; frames with no
// recognizable code produce nothing on it. Stop tears the stream down,
// which closes the channel, and must be safe to call in any state.
type Decoder interface {
	Start(ctx context.Context) (<-chan string, error)
	Stop() error
}

// Controller drives one scan at a time: a started scan stays active until
// the first successful decode or an explicit Stop, then returns to idle.
// Decode events observed outside the active state are dropped, so a late
// callback after teardown can never emit a second code.
type Controller struct {
	mu      sync.Mutex
	state   State
	decoder Decoder
	codes   chan string
	log     *logger.Logger
}

func NewController(decoder Decoder, log *logger.Logger) *Controller {
	return &Controller{
		state:   StateIdle,
		decoder: decoder,
		codes:   make(chan string, 1),
		log:     log,
	}
}

// Codes carries exactly one decoded code per completed scan.
func (c *Controller) Codes() <-chan string {
	return c.codes
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return domainErrors.ErrScannerBusy
	}
	c.state = StateStarting
	c.mu.Unlock()

	events, err := c.decoder.Start(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		c.log.Error("Camera stream acquisition failed", "error", err.Error())
		return fmt.Errorf("%w: %v", domainErrors.ErrCameraUnavailable, err)
	}

	c.mu.Lock()
	if c.state != StateStarting {
		// Stop raced the acquisition; honor it.
		c.mu.Unlock()
		_ = c.decoder.Stop()
		return nil
	}
	c.state = StateActive
	c.mu.Unlock()

	c.log.Info("Scan started")
	go c.consume(events)
	return nil
}

func (c *Controller) consume(events <-chan string) {
	for code := range events {
		c.mu.Lock()
		if c.state != StateActive {
			c.mu.Unlock()
			continue
		}
		c.state = StateStopping
		c.mu.Unlock()

		if err := c.decoder.Stop(); err != nil {
			c.log.Warn("Decoder teardown failed", "error", err.Error())
		}

		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()

		c.log.Info("Code decoded", "code", code)
		c.codes <- code
	}
}

// Stop cancels an in-progress scan; no code is emitted.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateActive && c.state != StateStarting {
		c.mu.Unlock()
		return domainErrors.ErrScannerNotActive
	}
	c.state = StateStopping
	c.mu.Unlock()

	err := c.decoder.Stop()

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("Decoder teardown failed", "error", err.Error())
		return err
	}
	c.log.Info("Scan stopped")
	return nil
}
