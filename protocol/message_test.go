package protocol_test

import (
	"testing"

	"github.com/scribeflow/scribe/protocol"
)

func TestInitMessages(t *testing.T) {
	msgs := protocol.InitMessages(protocol.RoleUser, "quantum computing")

	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1", len(msgs))
	}
	if msgs[0].Role != protocol.RoleUser {
		t.Errorf("role = %q, want %q", msgs[0].Role, protocol.RoleUser)
	}
	if msgs[0].Content != "quantum computing" {
		t.Errorf("content = %q, want %q", msgs[0].Content, "quantum computing")
	}
}

func TestLastContent(t *testing.T) {
	tests := []struct {
		name   string
		msgs   []protocol.Message
		want   string
		wantOK bool
	}{
		{name: "empty slice", msgs: nil, want: "", wantOK: false},
		{name: "single message", msgs: protocol.InitMessages(protocol.RoleUser, "topic"), want: "topic", wantOK: true},
		{
			name: "returns final message",
			msgs: []protocol.Message{
				protocol.NewMessage(protocol.RoleUser, "first"),
				protocol.NewMessage(protocol.RoleAssistant, "second"),
			},
			want:   "second",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := protocol.LastContent(tt.msgs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}
