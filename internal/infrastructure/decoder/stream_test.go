package decoder

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

func TestStreamDecoder(t *testing.T) {
	t.Run("emits decoded lines and skips blank frames", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
		defer listener.Close()

		go func() {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Write([]byte("\n\n4901234567894\n\n4901234567895\n"))
			conn.Close()
		}()

		d := NewStreamDecoder(listener.Addr().String(), logger.NewLogger())
		events, err := d.Start(context.Background())
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		defer d.Stop()

		var codes []string
		for code := range events {
			codes = append(codes, code)
		}
		if len(codes) != 2 || codes[0] != "4901234567894" || codes[1] != "4901234567895" {
			t.Fatalf("got codes %v", codes)
		}
	})

	t.Run("stop closes the event channel", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
		defer listener.Close()
		go func() {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			// hold the connection open until the decoder closes it
			buf := make([]byte, 1)
			conn.Read(buf)
		}()

		d := NewStreamDecoder(listener.Addr().String(), logger.NewLogger())
		events, err := d.Start(context.Background())
		if err != nil {
			t.Fatalf("start: %v", err)
		}

		if err := d.Stop(); err != nil {
			t.Fatalf("stop: %v", err)
		}

		select {
		case _, ok := <-events:
			if ok {
				t.Fatal("expected closed channel, got event")
			}
		case <-time.After(time.Second):
			t.Fatal("event channel not closed after stop")
		}

		// second stop is a no-op
		if err := d.Stop(); err != nil {
			t.Fatalf("second stop: %v", err)
		}
	})

	t.Run("unreachable daemon fails acquisition", func(t *testing.T) {
		d := NewStreamDecoder("127.0.0.1:1", logger.NewLogger())
		if _, err := d.Start(context.Background()); err == nil {
			t.Fatal("expected dial error")
		}
	})
}
