package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/ssh"

	zx509 "github.com/zmap/zcrypto/x509"

	"github.com/netreveal/hostscan/internal/logging"
)

const maxBannerBytes = 4096

// tlsPorts are probed with a TLS handshake instead of a plaintext read.
var tlsPorts = map[uint16]bool{443: true, 8443: true, 465: true, 993: true, 995: true}

// httpPorts get an explicit GET request, since most HTTP servers say
// nothing until spoken to.
var httpPorts = map[uint16]bool{80: true, 8080: true, 8000: true, 8888: true}

// TCPScanner probes a port with a plain connect, then — unless banner
// grabbing is disabled — enriches the connection with protocol-aware
// evidence: an SSH host-key fingerprint on port 22, a TLS certificate's
// subject on the HTTPS-coded ports, an HTTP response on the well-known web
// ports, or a plain read otherwise.
type TCPScanner struct {
	cfg Config
}

func NewTCPScanner(cfg Config) *TCPScanner { return &TCPScanner{cfg: cfg} }

func (s *TCPScanner) Probe(ctx context.Context, target Target) (Result, error) {
	addr := net.JoinHostPort(target.Address, strconv.Itoa(int(target.Port)))

	dialer := net.Dialer{Timeout: s.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{Alive: false, Reason: classifyDialError(err)}, nil
	}
	defer conn.Close()

	logging.InfoProbe("tcp connect succeeded", target.Address, "port", target.Port)

	if s.cfg.SkipBannerGrab {
		return Result{Alive: true, Reason: ReasonReplyReceived}, nil
	}

	deadline := time.Now().Add(s.cfg.BannerTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	banner := s.grabBanner(conn, addr, target)
	return Result{Alive: true, Reason: ReasonReplyReceived, Banner: banner}, nil
}

func (s *TCPScanner) grabBanner(conn net.Conn, addr string, target Target) []byte {
	switch {
	case target.Port == 22:
		return s.grabSSHBanner(conn, addr)
	case tlsPorts[target.Port]:
		return grabTLSBanner(conn, target.Address)
	case httpPorts[target.Port]:
		return grabHTTPBanner(conn, target.Address)
	default:
		return readLine(conn)
	}
}

// grabSSHBanner reads the plaintext identification string OpenSSH sends
// unprompted before any key exchange — the line the OS identifiers and
// version matchers key off of — then appends the server's host-key
// fingerprint as supplementary evidence from a brief, dedicated handshake
// attempt that aborts right after the key exchange.
func (s *TCPScanner) grabSSHBanner(conn net.Conn, addr string) []byte {
	line := readLine(conn)
	if fp := sshHostKeyFingerprint(addr, s.cfg.ConnectTimeout); fp != "" {
		line = append(line, []byte("\r\nssh-host-key: "+fp)...)
	}
	return line
}

var errHostKeyCaptured = errors.New("probe: host key captured, aborting handshake")

func sshHostKeyFingerprint(addr string, timeout time.Duration) string {
	var fingerprint string
	cfg := &ssh.ClientConfig{
		User:    "hostscan",
		Timeout: timeout,
		HostKeyCallback: func(_ string, _ net.Addr, key ssh.PublicKey) error {
			fingerprint = ssh.FingerprintSHA256(key)
			return errHostKeyCaptured
		},
	}
	client, _ := ssh.Dial("tcp", addr, cfg)
	if client != nil {
		client.Close()
	}
	return fingerprint
}

func grabTLSBanner(conn net.Conn, host string) []byte {
	tlsConn := tls.Client(conn, &tls.Config{InsecureSkipVerify: true, ServerName: host}) //nolint:gosec // scan-grade probe, not a trust decision
	if err := tlsConn.Handshake(); err != nil {
		return nil
	}
	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil
	}

	cert, err := zx509.ParseCertificate(state.PeerCertificates[0].Raw)
	if err != nil {
		return []byte(state.PeerCertificates[0].Subject.CommonName)
	}

	var b strings.Builder
	b.WriteString(cert.Subject.CommonName)
	for _, san := range cert.DNSNames {
		b.WriteString(" ")
		b.WriteString(san)
	}
	return []byte(b.String())
}

func grabHTTPBanner(conn net.Conn, host string) []byte {
	req := "GET / HTTP/1.0\r\nHost: " + host + "\r\nConnection: close\r\n\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		return nil
	}
	return readAll(conn, maxBannerBytes)
}

func readLine(conn net.Conn) []byte {
	buf := make([]byte, 0, 256)
	b := make([]byte, 1)
	for len(buf) < maxBannerBytes {
		n, err := conn.Read(b)
		if n > 0 {
			buf = append(buf, b[0])
			if b[0] == '\n' {
				break
			}
		}
		if err != nil {
			break
		}
	}
	return buf
}

func readAll(conn net.Conn, limit int) []byte {
	buf := make([]byte, limit)
	n, _ := conn.Read(buf)
	return buf[:n]
}

func classifyDialError(err error) Reason {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimedOut
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonPortUnreachable
	}
	if errors.Is(err, syscall.EHOSTUNREACH) {
		return ReasonHostUnreachable
	}
	return ReasonScanFailed
}
