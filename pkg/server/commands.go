package server

import (
	"fmt"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/caskdb/caskdb/internal/logger"
	"github.com/caskdb/caskdb/pkg/store"
	"github.com/caskdb/caskdb/pkg/version"
)

func (s *Server) handleCommand(conn redcon.Conn, cmd redcon.Command) {
	s.workers <- struct{}{}
	defer func() { <-s.workers }()

	name := strings.ToUpper(string(cmd.Args[0]))
	commandsTotal.WithLabelValues(name).Inc()

	switch name {
	case "PING":
		if len(cmd.Args) > 1 {
			conn.WriteBulk(cmd.Args[1])
			return
		}
		conn.WriteString("PONG")

	case "ECHO":
		if len(cmd.Args) != 2 {
			s.writeArityError(conn, name)
			return
		}
		conn.WriteBulk(cmd.Args[1])

	case "GET":
		if len(cmd.Args) != 2 {
			s.writeArityError(conn, name)
			return
		}
		value, err := s.store.Get(cmd.Args[1])
		if err == store.ErrKeyNotFound {
			conn.WriteNull()
			return
		}
		if err != nil {
			s.writeError(conn, name, err)
			return
		}
		conn.WriteBulk(value)

	case "SET":
		if len(cmd.Args) != 3 {
			s.writeArityError(conn, name)
			return
		}
		if err := s.store.Set(cmd.Args[1], cmd.Args[2]); err != nil {
			s.writeError(conn, name, err)
			return
		}
		conn.WriteString("OK")

	case "DEL":
		if len(cmd.Args) < 2 {
			s.writeArityError(conn, name)
			return
		}
		deleted := 0
		for _, key := range cmd.Args[1:] {
			existed, err := s.store.Delete(key)
			if err != nil {
				s.writeError(conn, name, err)
				return
			}
			if existed {
				deleted++
			}
		}
		conn.WriteInt(deleted)

	case "EXISTS":
		if len(cmd.Args) < 2 {
			s.writeArityError(conn, name)
			return
		}
		found := 0
		for _, key := range cmd.Args[1:] {
			ok, err := s.store.Exists(key)
			if err != nil {
				s.writeError(conn, name, err)
				return
			}
			if ok {
				found++
			}
		}
		conn.WriteInt(found)

	case "DBSIZE":
		count, err := s.store.Count()
		if err != nil {
			s.writeError(conn, name, err)
			return
		}
		conn.WriteInt64(count)

	case "INFO":
		conn.WriteBulkString(s.infoText())

	case "QUIT":
		conn.WriteString("OK")
		conn.Close()

	case "SHUTDOWN":
		logger.Info("Shutdown requested by client", "remote", conn.RemoteAddr())
		s.stopRequested.Store(true)
		conn.WriteString("OK")
		conn.Close()

	default:
		commandErrorsTotal.WithLabelValues(name).Inc()
		conn.WriteError(fmt.Sprintf("ERR unknown command '%s'", cmd.Args[0]))
	}
}

func (s *Server) infoText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Server\r\n")
	fmt.Fprintf(&b, "caskdb_version:%s\r\n", version.Server())
	fmt.Fprintf(&b, "engine_version:%s\r\n", version.Engine())
	fmt.Fprintf(&b, "data_format_version:%s\r\n", version.DataFormat())
	fmt.Fprintf(&b, "tcp_port:%d\r\n", s.opts.Port)
	fmt.Fprintf(&b, "connected_clients:%d\r\n", s.connections.Load())
	return b.String()
}

func (s *Server) writeArityError(conn redcon.Conn, name string) {
	commandErrorsTotal.WithLabelValues(name).Inc()
	conn.WriteError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(name)))
}

func (s *Server) writeError(conn redcon.Conn, name string, err error) {
	commandErrorsTotal.WithLabelValues(name).Inc()
	logger.Error("Command failed", "command", name, "error", err)
	conn.WriteError("ERR " + err.Error())
}
