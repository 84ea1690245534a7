package http

import (
	"bytes"
	"io"
	"strconv"
)

// ResponseHead is a parsed HTTP status line plus headers.
type ResponseHead struct {
	Version    int
	StatusCode int
	Reason     string

	headers []header
}

// Header returns the value of the named header, case-insensitively, or
// nil if absent.
func (h *ResponseHead) Header(name string) []byte {
	return lookup(h.headers, name)
}

// ResponseReader incrementally parses an HTTP status line and headers
// from an underlying (possibly non-blocking) reader.
type ResponseReader struct {
	headReader
	head ResponseHead
}

// NewResponseReader wraps in.
func NewResponseReader(in io.Reader) *ResponseReader {
	r := &ResponseReader{}
	r.in = in
	return r
}

// ReadHead attempts to parse the response head; see RequestReader.ReadHead
// for the incremental-read contract.
func (r *ResponseReader) ReadHead() (*ResponseHead, error) {
	if r.found {
		if err := r.parse(); err != nil {
			return nil, err
		}
		return &r.head, nil
	}
	if err := r.fill(); err != nil {
		return nil, err
	}
	end := findBlankLine(r.buf[:r.bufUsed])
	if end < 0 {
		return nil, ErrWouldBlock
	}
	r.headLen = end
	r.found = true
	r.bufStart = end
	if err := r.parse(); err != nil {
		return nil, err
	}
	return &r.head, nil
}

func (r *ResponseReader) parse() error {
	raw := r.buf[:r.headLen]
	lineEnd := bytes.IndexByte(raw, '\n')
	if lineEnd < 0 {
		return errMalformed
	}
	line := bytes.TrimRight(raw[:lineEnd], "\r\n")
	parts := bytes.SplitN(line, []byte(" "), 3)
	if len(parts) < 2 {
		return errMalformed
	}
	version, err := parseVersion(parts[0])
	if err != nil {
		return err
	}
	code, err := strconv.Atoi(string(parts[1]))
	if err != nil {
		return errMalformed
	}
	reason := ""
	if len(parts) == 3 {
		reason = string(parts[2])
	}

	r.head = ResponseHead{
		Version:    version,
		StatusCode: code,
		Reason:     reason,
	}

	rest := raw[lineEnd+1:]
	r.head.headers = r.head.headers[:0]
	for len(rest) > 0 {
		end := bytes.IndexByte(rest, '\n')
		if end < 0 {
			break
		}
		line := bytes.TrimRight(rest[:end], "\r\n")
		rest = rest[end+1:]
		if len(line) == 0 {
			break
		}
		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		name := bytes.TrimSpace(line[:colon])
		value := bytes.TrimSpace(line[colon+1:])
		if len(r.head.headers) >= MaxHeaders {
			break
		}
		r.head.headers = append(r.head.headers, header{name: name, value: value})
	}
	return nil
}
