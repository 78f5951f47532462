package web

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coder/websocket"

	"mandelscope/fractal"
)

// clientMsg is what the page sends: either a full parameter map or a new
// canvas size.
type clientMsg struct {
	Type   string             `json:"type"`
	Params map[string]float64 `json:"params,omitempty"`
	Width  int                `json:"width,omitempty"`
	Height int                `json:"height,omitempty"`
}

// frameMsg carries one completed pass to the page.
type frameMsg struct {
	Seq       int    `json:"seq"`
	Pass      int    `json:"pass"`
	Total     int    `json:"total"`
	Converged bool   `json:"converged"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Divisor   int    `json:"divisor"`
	State     string `json:"state"`
	PNG       string `json:"png"`
}

// session is one connection's renderer plus its parameter state. All
// fields are owned by the run loop.
type session struct {
	opts   Options
	r      *fractal.Renderer
	params map[string]float64
	seq    int
	sent   *fractal.PixelBuffer
}

func newSession(opts Options) *session {
	return &session{
		opts:   opts,
		r:      fractal.NewRenderer(opts.Width, opts.Height),
		params: map[string]float64{},
	}
}

// run pumps the connection: a reader goroutine feeds client messages into
// the loop, a ticker paces render steps, and every freshly completed pass
// is pushed out.
func (s *session) run(ctx context.Context, c *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan clientMsg, 16)
	go func() {
		defer cancel()
		for {
			_, data, err := c.Read(ctx)
			if err != nil {
				return
			}
			var m clientMsg
			if err := json.Unmarshal(data, &m); err != nil {
				continue
			}
			select {
			case msgs <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	dt := 1.0 / float64(s.opts.FPS)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-msgs:
			s.apply(m)
		case <-ticker.C:
			s.r.Update(dt, s.params)
			if err := s.push(ctx, c); err != nil {
				return err
			}
		}
	}
}

func (s *session) apply(m clientMsg) {
	switch m.Type {
	case "params":
		for k, v := range m.Params {
			s.params[k] = v
		}
	case "resize":
		s.r.Resize(m.Width, m.Height)
	}
}

// push sends the latest pass if it has not been sent yet. Buffers are
// fresh per pass, so pointer identity is the dedupe key.
func (s *session) push(ctx context.Context, c *websocket.Conn) error {
	buf := s.r.Latest()
	if buf == nil || buf == s.sent {
		return nil
	}
	w, h := s.r.Size()
	png64, err := encodeFrame(buf, w, h)
	if err != nil {
		return err
	}

	done, total := s.r.Progress()
	s.seq++
	payload, err := json.Marshal(frameMsg{
		Seq:       s.seq,
		Pass:      done,
		Total:     total,
		Converged: s.r.Converged(),
		Width:     w,
		Height:    h,
		Divisor:   buf.Divisor,
		State:     s.r.StateDescription(),
		PNG:       png64,
	})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	s.sent = buf

	wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Write(wctx, websocket.MessageText, payload)
}
