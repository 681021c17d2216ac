package decoder

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"

	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

// StreamDecoder reads decode events from the camera decoder daemon over
// TCP: one line per successfully recognized frame. Frames with no code in
// them produce blank lines, which carry nothing and are dropped here. A
// failed dial is the access-denied path upstream.
type StreamDecoder struct {
	addr string
	log  *logger.Logger

	mu   sync.Mutex
	conn net.Conn
}

func NewStreamDecoder(addr string, log *logger.Logger) *StreamDecoder {
	return &StreamDecoder{
		addr: addr,
		log:  log,
	}
}

func (d *StreamDecoder) Start(ctx context.Context) (<-chan string, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", d.addr)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.conn = conn
	d.mu.Unlock()

	events := make(chan string, 1)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			code := strings.TrimSpace(scanner.Text())
			if code == "" {
				continue
			}
			events <- code
		}
		if err := scanner.Err(); err != nil {
			d.log.Debug("Decoder stream closed", "error", err.Error())
		}
	}()

	return events, nil
}

func (d *StreamDecoder) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
