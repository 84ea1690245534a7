package http

import (
	"bytes"
	"io"
	"strconv"
)

// RequestHead is a parsed HTTP request line plus headers. Method and Path
// are copies; the header name/value slices reference the RequestReader's
// internal buffer and are only valid for the reader's lifetime.
type RequestHead struct {
	Method  Method
	Path    string
	Version int // 0 or 1, for HTTP/1.0 vs HTTP/1.1

	headers []header
}

// Header returns the value of the named header, case-insensitively, or
// nil if absent.
func (h *RequestHead) Header(name string) []byte {
	return lookup(h.headers, name)
}

// RequestReader incrementally parses an HTTP request head from an
// underlying (possibly non-blocking) reader.
type RequestReader struct {
	headReader
	head RequestHead
}

// NewRequestReader wraps in.
func NewRequestReader(in io.Reader) *RequestReader {
	r := &RequestReader{}
	r.in = in
	return r
}

// ReadHead attempts to parse the request head. Each call makes at most one
// Read on the underlying reader; it returns ErrWouldBlock if the bytes
// buffered so far don't contain a complete head, and passes through any
// error the underlying reader returns (such as its own would-block
// error) other than io.EOF. Once the head has been found, subsequent calls re-parse the buffered
// bytes and return immediately rather than touching the underlying
// reader again.
func (r *RequestReader) ReadHead() (*RequestHead, error) {
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

// parse re-derives r.head from the buffered head bytes. It is re-run on
// every ReadHead call once found is true rather than caching the parsed
// struct, avoiding any aliasing risk between the returned pointer and
// mutable reader state.
func (r *RequestReader) parse() error {
	raw := r.buf[:r.headLen]
	lineEnd := bytes.IndexByte(raw, '\n')
	if lineEnd < 0 {
		return errMalformed
	}
	line := bytes.TrimRight(raw[:lineEnd], "\r\n")
	parts := bytes.SplitN(line, []byte(" "), 3)
	if len(parts) != 3 {
		return errMalformed
	}
	method, err := parseMethod(string(parts[0]))
	if err != nil {
		return err
	}
	version, err := parseVersion(parts[2])
	if err != nil {
		return err
	}

	r.head = RequestHead{
		Method:  method,
		Path:    string(parts[1]),
		Version: version,
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

func parseVersion(v []byte) (int, error) {
	const prefix = "HTTP/1."
	s := string(v)
	if len(s) != len(prefix)+1 || s[:len(prefix)] != prefix {
		return 0, errMalformed
	}
	n, err := strconv.Atoi(s[len(prefix):])
	if err != nil {
		return 0, errMalformed
	}
	return n, nil
}
