package netplay

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// dscpAF31 marks netplay datagrams for low-latency treatment on
// networks that honor DSCP.
const dscpAF31 = 0x68

type packet struct {
	from netip.AddrPort
	buf  []byte
}

// Conn is the one UDP socket shared by matchmaking, the handshake and
// the input stream. A background goroutine drains the socket into a
// queue so the game loop can poll every tick without ever blocking on
// the network.
type Conn struct {
	udp     *net.UDPConn
	version []byte
	queue   chan packet
	sendBuf []byte
}

// Bind opens a netplay socket on addr. version is attached to every
// outgoing message; incoming messages carrying a different version are
// dropped.
func Bind(addr string, version []byte) (*Conn, error) {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind netplay socket: %w", err)
	}
	udp := pc.(*net.UDPConn)

	if err := ipv4.NewConn(udp).SetTOS(dscpAF31); err != nil {
		if err := ipv6.NewConn(udp).SetTrafficClass(dscpAF31); err != nil {
			logrus.WithError(err).Debug("netplay socket priority not set")
		}
	}

	c := &Conn{
		udp:     udp,
		version: version,
		queue:   make(chan packet, recvQueueLen),
		sendBuf: make([]byte, 0, BufferLen),
	}
	go c.readLoop()

	logrus.WithField("addr", udp.LocalAddr()).Info("netplay socket bound")
	return c, nil
}

// Close shuts the socket down and stops the read loop.
func (c *Conn) Close() error {
	return c.udp.Close()
}

// LocalAddr returns the bound address.
func (c *Conn) LocalAddr() net.Addr {
	return c.udp.LocalAddr()
}

func (c *Conn) readLoop() {
	for {
		buf := make([]byte, BufferLen)
		n, from, err := c.udp.ReadFromUDPAddrPort(buf)
		if err != nil {
			logrus.WithError(err).Debug("netplay read loop stopped")
			return
		}
		select {
		case c.queue <- packet{from: canonical(from), buf: buf[:n]}:
		default:
			// Queue full; treated like any other lost datagram.
		}
	}
}

// recvPacket pops one pending datagram without blocking.
func (c *Conn) recvPacket() (packet, bool) {
	select {
	case p := <-c.queue:
		return p, true
	default:
		return packet{}, false
	}
}

// recvMessage pops pending datagrams until it finds a well-formed game
// message for our version. Everything else is discarded.
func (c *Conn) recvMessage() (message, netip.AddrPort, bool) {
	for {
		p, ok := c.recvPacket()
		if !ok {
			return message{}, netip.AddrPort{}, false
		}
		if m, ok := decodeMessage(c.version, p.buf); ok {
			return m, p.from, true
		}
	}
}

func (c *Conn) send(to netip.AddrPort, frame int, m message) error {
	m.frame = frame
	c.sendBuf = appendMessage(c.sendBuf[:0], c.version, m)
	if _, err := c.udp.WriteToUDPAddrPort(c.sendBuf, to); err != nil {
		return fmt.Errorf("failed to send to %s: %w", to, err)
	}
	return nil
}

func (c *Conn) sendRaw(to netip.AddrPort, b []byte) error {
	if _, err := c.udp.WriteToUDPAddrPort(b, to); err != nil {
		return fmt.Errorf("failed to send to %s: %w", to, err)
	}
	return nil
}

// ResolveAddr resolves a host:port string to a UDP endpoint.
func ResolveAddr(s string) (netip.AddrPort, error) {
	ua, err := net.ResolveUDPAddr("udp", s)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("failed to resolve %q: %w", s, err)
	}
	return canonical(ua.AddrPort()), nil
}

// canonical unmaps 4-in-6 addresses so peer comparisons hold no matter
// which form the socket reports.
func canonical(ap netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
