package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the subject namespace for lifecycle events. The event
// type is appended, e.g. "asynckit.tasks.completed".
const SubjectPrefix = "asynckit.tasks."

// NATSPublisher implements Publisher over a NATS connection, letting
// other processes observe task lifecycles.
type NATSPublisher struct {
	conn    *nats.Conn
	config  NATSConfig
	ownConn bool
}

// NATSConfig holds NATS connection configuration.
type NATSConfig struct {
	Config // Embed base config

	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// Name is the client name for identification.
	Name string

	// Token for token-based auth.
	Token string

	// User and Password for basic auth.
	User     string
	Password string

	// ReconnectWait is the time to wait between reconnection attempts.
	ReconnectWait time.Duration

	// MaxReconnects is the maximum number of reconnection attempts.
	// -1 = unlimited
	MaxReconnects int

	// ConnectTimeout for initial connection.
	ConnectTimeout time.Duration
}

// DefaultNATSConfig returns configuration with sensible defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		Config:         DefaultConfig(),
		URL:            nats.DefaultURL,
		ReconnectWait:  2 * time.Second,
		MaxReconnects:  -1, // Unlimited
		ConnectTimeout: 5 * time.Second,
	}
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to NATS and returns an event publisher.
func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}

	conn, err := nats.Connect(cfg.URL, buildNATSOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSPublisher{
		conn:    conn,
		config:  cfg,
		ownConn: true,
	}, nil
}

// NewNATSPublisherFromConn wraps an existing connection. The caller
// remains responsible for the connection's lifetime.
func NewNATSPublisherFromConn(conn *nats.Conn, cfg NATSConfig) *NATSPublisher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	return &NATSPublisher{
		conn:   conn,
		config: cfg,
	}
}

// buildNATSOptions constructs NATS connection options from config.
func buildNATSOptions(cfg NATSConfig) []nats.Option {
	opts := []nats.Option{
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
	}

	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}
	if cfg.User != "" {
		opts = append(opts, nats.UserInfo(cfg.User, cfg.Password))
	}

	return opts
}

// Publish sends the event to the subject for its type.
func (p *NATSPublisher) Publish(e Event) error {
	data, err := e.Marshal()
	if err != nil {
		return err
	}
	if p.conn.IsClosed() {
		return ErrClosed
	}

	if err := p.conn.Publish(SubjectPrefix+string(e.Type), data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// Subscribe receives events of every type.
func (p *NATSPublisher) Subscribe() (Subscription, error) {
	if p.conn.IsClosed() {
		return nil, ErrClosed
	}

	ch := make(chan Event, p.config.BufferSize)

	natsSub, err := p.conn.Subscribe(SubjectPrefix+">", func(m *nats.Msg) {
		e, err := Unmarshal(m.Data)
		if err != nil {
			return
		}
		select {
		case ch <- *e:
		default:
			// Buffer full
		}
	})
	if err != nil {
		close(ch)
		return nil, fmt.Errorf("nats subscribe: %w", err)
	}

	return &natsSubscription{
		sub: natsSub,
		ch:  ch,
	}, nil
}

// Close shuts down the publisher. The connection is closed only if this
// publisher opened it.
func (p *NATSPublisher) Close() error {
	if p.ownConn {
		p.conn.Close()
	}
	return nil
}

// Conn returns the underlying NATS connection for advanced use.
func (p *NATSPublisher) Conn() *nats.Conn {
	return p.conn
}

// natsSubscription wraps a NATS subscription.
type natsSubscription struct {
	sub *nats.Subscription
	ch  chan Event
}

// Events returns the event channel.
func (s *natsSubscription) Events() <-chan Event {
	return s.ch
}

// Unsubscribe cancels the subscription.
func (s *natsSubscription) Unsubscribe() error {
	err := s.sub.Unsubscribe()
	close(s.ch)
	return err
}
