package service

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"gameday-api/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSMTPServer speaks just enough SMTP for one delivery and captures
// the DATA payload.
type scriptedSMTPServer struct {
	ln net.Listener

	mu   sync.Mutex
	data strings.Builder
}

func newScriptedSMTPServer(t *testing.T) *scriptedSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &scriptedSMTPServer{ln: ln}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		fmt.Fprintf(conn, "220 local test relay\r\n")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				fmt.Fprintf(conn, "250 ok\r\n")
			case strings.HasPrefix(cmd, "DATA"):
				fmt.Fprintf(conn, "354 go ahead\r\n")
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if strings.TrimRight(l, "\r\n") == "." {
						break
					}
					s.mu.Lock()
					s.data.WriteString(l)
					s.mu.Unlock()
				}
				fmt.Fprintf(conn, "250 ok\r\n")
			case strings.HasPrefix(cmd, "QUIT"):
				fmt.Fprintf(conn, "221 bye\r\n")
				return
			default:
				fmt.Fprintf(conn, "250 ok\r\n")
			}
		}
	}()
	return s
}

func (s *scriptedSMTPServer) received() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.String()
}

func smtpConfigFor(t *testing.T, addr string) config.SMTPConfig {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return config.SMTPConfig{Host: host, Port: port, From: "noreply@gameday.test"}
}

func TestSMTPMailerSend(t *testing.T) {
	srv := newScriptedSMTPServer(t)
	m := &smtpMailer{cfg: smtpConfigFor(t, srv.ln.Addr().String()), timeout: 5 * time.Second}

	err := m.Send("player@example.com", "It's on!", "See you there.\n")
	require.NoError(t, err)

	got := srv.received()
	assert.Contains(t, got, "To: player@example.com")
	assert.Contains(t, got, "Subject: It's on!")
	assert.Contains(t, got, "See you there.")
}

// A relay that accepts the connection and then goes silent must not hold the
// sender past its deadline.
func TestSMTPMailerTimesOutOnHungRelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		// Never send the greeting; hold the connection open.
		defer conn.Close()
		time.Sleep(10 * time.Second)
	}()

	m := &smtpMailer{cfg: smtpConfigFor(t, ln.Addr().String()), timeout: 200 * time.Millisecond}

	start := time.Now()
	err = m.Send("player@example.com", "subject", "body")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSMTPMailerRequiresConfiguration(t *testing.T) {
	m := &smtpMailer{cfg: config.SMTPConfig{}, timeout: time.Second}
	assert.Error(t, m.Send("player@example.com", "subject", "body"))
}
