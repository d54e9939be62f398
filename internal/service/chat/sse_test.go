package chat

import (
	"fmt"
	"reflect"
	"testing"
)

// feedAll 以固定块大小喂入整个流并收集全部负载
func feedAll(p *sseParser, stream []byte, chunkSize int) []string {
	var payloads []string
	for offset := 0; offset < len(stream); offset += chunkSize {
		end := offset + chunkSize
		if end > len(stream) {
			end = len(stream)
		}
		payloads = append(payloads, p.feed(stream[offset:end])...)
	}
	return append(payloads, p.flush()...)
}

func TestSSEParserBasic(t *testing.T) {
	stream := []byte("data: {\"a\":1}\n\ndata: {\"b\":2}\n\ndata: [DONE]\n\n")
	p := &sseParser{}
	got := p.feed(stream)
	want := []string{`{"a":1}`, `{"b":2}`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payloads = %v, want %v", got, want)
	}
	if !p.done {
		t.Fatal("parser not done after [DONE]")
	}
}

func TestSSEParserChunkSplitInvariance(t *testing.T) {
	// 含多字节字符和保活行，在每一个可能的块大小下都必须产出相同序列
	stream := []byte("data: {\"choices\":[{\"delta\":{\"content\":\"校园 hello\"}}]}\n" +
		": keep-alive\n" +
		"\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\n" +
		"data: [DONE]\n")
	whole := &sseParser{}
	want := feedAll(whole, stream, len(stream))

	for chunkSize := 1; chunkSize <= len(stream); chunkSize++ {
		p := &sseParser{}
		got := feedAll(p, stream, chunkSize)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunkSize=%d: payloads = %v, want %v", chunkSize, got, want)
		}
	}
}

func TestSSEParserPartialLineRequeued(t *testing.T) {
	p := &sseParser{}
	// 行在块边界被截断（尚无换行符），字节必须原样留在缓冲区
	if got := p.feed([]byte("data: {\"a\":")); len(got) != 0 {
		t.Fatalf("incomplete line produced payloads: %v", got)
	}
	got := p.feed([]byte("1}\n"))
	if !reflect.DeepEqual(got, []string{`{"a":1}`}) {
		t.Fatalf("payloads after completion = %v", got)
	}
}

func TestSSEParserCRLF(t *testing.T) {
	p := &sseParser{}
	got := p.feed([]byte("data: {\"x\":true}\r\n\r\ndata: [DONE]\r\n"))
	if !reflect.DeepEqual(got, []string{`{"x":true}`}) {
		t.Fatalf("payloads = %v", got)
	}
	if !p.done {
		t.Fatal("parser not done")
	}
}

func TestSSEParserIgnoresKeepaliveAndNonData(t *testing.T) {
	p := &sseParser{}
	got := p.feed([]byte(": ping\n\nevent: meta\ndata: {\"ok\":1}\n"))
	if !reflect.DeepEqual(got, []string{`{"ok":1}`}) {
		t.Fatalf("payloads = %v", got)
	}
}

func TestSSEParserFlushLeftover(t *testing.T) {
	p := &sseParser{}
	// 流在没有换行的情况下结束，flush 要救回合法负载
	if got := p.feed([]byte("data: {\"tail\":1}")); len(got) != 0 {
		t.Fatalf("unterminated line produced payloads: %v", got)
	}
	got := p.flush()
	if !reflect.DeepEqual(got, []string{`{"tail":1}`}) {
		t.Fatalf("flush = %v", got)
	}
	// flush 后缓冲区清空，重复调用不再产出
	if got := p.flush(); len(got) != 0 {
		t.Fatalf("second flush = %v", got)
	}
}

func TestSSEParserFlushDropsMalformed(t *testing.T) {
	p := &sseParser{}
	p.feed([]byte("data: {\"good\":1}\ndata: {\"trunc"))
	got := p.flush()
	if len(got) != 0 {
		t.Fatalf("flush rescued malformed tail: %v", got)
	}
}

func TestSSEParserStopsAfterDone(t *testing.T) {
	p := &sseParser{}
	got := p.feed([]byte("data: [DONE]\ndata: {\"late\":1}\n"))
	if len(got) != 0 {
		t.Fatalf("payloads after sentinel: %v", got)
	}
	if more := p.feed([]byte("data: {\"later\":2}\n")); len(more) != 0 {
		t.Fatalf("parser kept producing after done: %v", more)
	}
}

func TestSSEParserManyEvents(t *testing.T) {
	var stream []byte
	var want []string
	for i := 0; i < 50; i++ {
		payload := fmt.Sprintf(`{"n":%d}`, i)
		stream = append(stream, []byte("data: "+payload+"\n\n")...)
		want = append(want, payload)
	}
	p := &sseParser{}
	got := feedAll(p, stream, 7)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payloads mismatch: got %d, want %d", len(got), len(want))
	}
}
