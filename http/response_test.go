package http

import "testing"

func TestResponseReaderFullStatusLine(t *testing.T) {
	in := &chunkReader{chunks: [][]byte{
		[]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nbody"),
	}}
	r := NewResponseReader(in)

	head, err := r.ReadHead()
	if err != nil {
		t.Fatalf("ReadHead: %v", err)
	}
	if head.Version != 1 {
		t.Fatalf("Version = %d, want 1", head.Version)
	}
	if head.StatusCode != 200 {
		t.Fatalf("StatusCode = %d, want 200", head.StatusCode)
	}
	if head.Reason != "OK" {
		t.Fatalf("Reason = %q, want %q", head.Reason, "OK")
	}
	if got := head.Header("content-type"); string(got) != "text/plain" {
		t.Fatalf("Header(content-type) = %q, want %q", got, "text/plain")
	}

	body := make([]byte, 4)
	n, err := r.Read(body)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(body[:n]) != "body" {
		t.Fatalf("Read = %q, want %q", body[:n], "body")
	}
}

func TestResponseReaderMalformedStatusCode(t *testing.T) {
	in := &chunkReader{chunks: [][]byte{[]byte("HTTP/1.1 xyz Bad\r\n\r\n")}}
	r := NewResponseReader(in)
	if _, err := r.ReadHead(); err != errMalformed {
		t.Fatalf("ReadHead err = %v, want errMalformed", err)
	}
}

// blockingReader never produces a blank line, simulating a peer that
// keeps sending headers without ever terminating the head.
type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func TestHeadReaderBufferFull(t *testing.T) {
	r := NewResponseReader(blockingReader{})
	var err error
	for i := 0; i < MaxHeadLength/64+2; i++ {
		_, err = r.ReadHead()
		if err != ErrWouldBlock && err != ErrHeaderBufferFull {
			t.Fatalf("ReadHead err = %v, want ErrWouldBlock or ErrHeaderBufferFull", err)
		}
		if err == ErrHeaderBufferFull {
			break
		}
	}
	if err != ErrHeaderBufferFull {
		t.Fatalf("final ReadHead err = %v, want ErrHeaderBufferFull", err)
	}
}
