package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// redisTarget is the parsed form of a redis:// URL.
type redisTarget struct {
	Addr     string
	Password string
	DB       int
}

func parseRedisURL(raw string) (redisTarget, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return redisTarget{}, errors.Wrap(err, "invalid REDIS_URL")
	}
	if u.Scheme == "unix" {
		return redisTarget{}, errors.New("unix sockets not supported by this worker")
	}
	if u.Host == "" {
		return redisTarget{}, errors.Errorf("REDIS_URL %q has no host", raw)
	}
	t := redisTarget{Addr: u.Host}
	if u.Port() == "" {
		t.Addr = net.JoinHostPort(u.Hostname(), "6379")
	}
	if u.User != nil {
		t.Password, _ = u.User.Password()
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		if t.DB, err = strconv.Atoi(db); err != nil {
			return redisTarget{}, errors.Errorf("invalid redis database %q", db)
		}
	}
	return t, nil
}

// redisConn speaks just enough RESP for a BRPOP based job queue.
type redisConn struct {
	conn net.Conn
	rw   *bufio.ReadWriter
}

func dialRedis(ctx context.Context, t redisTarget) (*redisConn, error) {
	d := net.Dialer{Timeout: 5 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return nil, errors.Wrap(err, "redis connect failed")
	}
	c := &redisConn{
		conn: conn,
		rw:   bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn)),
	}
	if t.Password != "" {
		if err := c.expectOK("AUTH", t.Password); err != nil {
			c.Close()
			return nil, errors.Wrap(err, "redis auth failed")
		}
	}
	if t.DB != 0 {
		if err := c.expectOK("SELECT", strconv.Itoa(t.DB)); err != nil {
			c.Close()
			return nil, errors.Wrap(err, "redis select failed")
		}
	}
	return c, nil
}

func (c *redisConn) Close() error {
	return c.conn.Close()
}

func (c *redisConn) expectOK(cmd string, args ...string) error {
	if err := writeCommand(c.rw.Writer, cmd, args...); err != nil {
		return err
	}
	return readOK(c.rw.Reader)
}

// brpop blocks for up to timeout waiting for an element of queue. An empty
// payload with a nil error means the timeout elapsed.
func (c *redisConn) brpop(queue string, timeout time.Duration) (key, payload string, err error) {
	secs := strconv.Itoa(max(int(timeout/time.Second), 1))
	if err := writeCommand(c.rw.Writer, "BRPOP", queue, secs); err != nil {
		return "", "", err
	}
	return readBRPOP(c.rw.Reader)
}

func writeCommand(w *bufio.Writer, cmd string, args ...string) error {
	if _, err := fmt.Fprintf(w, "*%d\r\n", 1+len(args)); err != nil {
		return err
	}
	if err := writeBulk(w, cmd); err != nil {
		return err
	}
	for _, a := range args {
		if err := writeBulk(w, a); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeBulk(w *bufio.Writer, s string) error {
	_, err := fmt.Fprintf(w, "$%d\r\n%s\r\n", len(s), s)
	return err
}

func readLine(r *bufio.Reader) (string, error) {
	b, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(b) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r"), nil
}

func readOK(r *bufio.Reader) error {
	line, err := readLine(r)
	if err != nil {
		return err
	}
	if strings.HasPrefix(line, "+") {
		return nil
	}
	return errors.Errorf("redis not OK: %s", line)
}

// readBulk reads a bulk string whose "$<len>" header is already consumed.
func readBulk(r *bufio.Reader, header string) (string, bool, error) {
	n, err := strconv.Atoi(header[1:])
	if err != nil {
		return "", false, errors.Errorf("bad bulk header %q", header)
	}
	if n < 0 {
		return "", false, nil
	}
	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", false, err
	}
	return string(buf[:n]), true, nil
}

func readBRPOP(r *bufio.Reader) (key string, payload string, err error) {
	line, err := readLine(r)
	if err != nil {
		return "", "", err
	}
	if line == "" {
		return "", "", errors.New("empty reply")
	}
	switch line[0] {
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return "", "", errors.Errorf("bad array header %q", line)
		}
		if n <= 0 {
			return "", "", nil
		}
		if n != 2 {
			return "", "", errors.Errorf("unexpected BRPOP reply with %d elements", n)
		}
		var items [2]string
		for i := range items {
			header, err := readLine(r)
			if err != nil {
				return "", "", err
			}
			if !strings.HasPrefix(header, "$") {
				return "", "", errors.Errorf("unexpected element %q", header)
			}
			if items[i], _, err = readBulk(r, header); err != nil {
				return "", "", err
			}
		}
		return items[0], items[1], nil
	case '$':
		payload, _, err := readBulk(r, line)
		return "", payload, err
	case '-':
		return "", "", errors.Errorf("redis error: %s", line[1:])
	default:
		return "", "", errors.Errorf("unexpected reply: %s", line)
	}
}
