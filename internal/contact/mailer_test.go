package contact

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPConfigValidate(t *testing.T) {
	valid := SMTPConfig{Host: "smtp.example.com", Port: 587, From: "site@example.com", To: "me@example.com"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *SMTPConfig)
	}{
		{"missing host", func(c *SMTPConfig) { c.Host = "" }},
		{"missing port", func(c *SMTPConfig) { c.Port = 0 }},
		{"missing from", func(c *SMTPConfig) { c.From = "" }},
		{"missing to", func(c *SMTPConfig) { c.To = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())

			_, err := NewSMTPMailer(cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	m := &SMTPMailer{config: SMTPConfig{From: "Portfolio <site@example.com>", To: "me@example.com"}}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg := string(m.buildMessage("Hello\r\nBcc: victim@example.com", "body text", "a@example.com\nX-Evil: 1", now))

	assert.Contains(t, msg, "From: Portfolio <site@example.com>\r\n")
	assert.Contains(t, msg, "To: me@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: a@example.com X-Evil: 1\r\n")
	assert.Contains(t, msg, "Subject: Hello  Bcc: victim@example.com\r\n")
	assert.Contains(t, msg, "Date: "+now.Format(time.RFC1123Z))
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody text"))
	assert.NotContains(t, msg, "\nBcc:")
}

func TestBuildMessageWithoutReplyTo(t *testing.T) {
	m := &SMTPMailer{config: SMTPConfig{From: "site@example.com", To: "me@example.com"}}
	msg := string(m.buildMessage("s", "b", "", time.Now()))
	assert.NotContains(t, msg, "Reply-To")
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "site@example.com", extractEmail("Portfolio <site@example.com>"))
	assert.Equal(t, "site@example.com", extractEmail("site@example.com"))
	assert.Equal(t, "broken <site", extractEmail("broken <site"))
}

// mockSMTPServer accepts plain SMTP sessions and records message bodies.
type mockSMTPServer struct {
	listener net.Listener
	messages []string
	mu       sync.Mutex
	wg       sync.WaitGroup
}

func newMockSMTPServer(t *testing.T) *mockSMTPServer {
	t.Helper()
	var lc net.ListenConfig
	listener, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &mockSMTPServer{listener: listener}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.close)
	return s
}

func (s *mockSMTPServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *mockSMTPServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	reply := func(line string) {
		w.WriteString(line + "\r\n")
		w.Flush()
	}
	reply("220 localhost mock")

	var data bool
	var body strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if data {
			if line == "." {
				data = false
				s.mu.Lock()
				s.messages = append(s.messages, body.String())
				s.mu.Unlock()
				body.Reset()
				reply("250 OK")
				continue
			}
			body.WriteString(line + "\n")
			continue
		}

		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			w.WriteString("250-localhost\r\n")
			reply("250 OK")
		case strings.HasPrefix(upper, "MAIL FROM"), strings.HasPrefix(upper, "RCPT TO"):
			reply("250 OK")
		case upper == "DATA":
			data = true
			reply("354 Start mail input")
		case upper == "QUIT":
			reply("221 Bye")
			return
		default:
			reply("500 Unknown command")
		}
	}
}

func (s *mockSMTPServer) close() {
	s.listener.Close()
	s.wg.Wait()
}

func (s *mockSMTPServer) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

func TestSMTPMailerSend(t *testing.T) {
	server := newMockSMTPServer(t)
	host, portStr, err := net.SplitHostPort(server.listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	mailer, err := NewSMTPMailer(SMTPConfig{
		Host: host,
		Port: port,
		From: "Portfolio <site@example.com>",
		To:   "me@example.com",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, mailer.Send(ctx, "New message", "Hello there", "visitor@example.com"))

	msgs := server.received()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Subject: New message")
	assert.Contains(t, msgs[0], "Reply-To: visitor@example.com")
	assert.Contains(t, msgs[0], "Hello there")
}

func TestSMTPMailerSendConnectionRefused(t *testing.T) {
	var lc net.ListenConfig
	l, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	l.Close()

	mailer, err := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: addr.Port, From: "a@example.com", To: "b@example.com"})
	require.NoError(t, err)

	err = mailer.Send(context.Background(), "s", "b", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
