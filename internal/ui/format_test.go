package ui

import (
	"testing"

	rtest "github.com/restic/fhbackup/internal/test"
)

func TestQuote(t *testing.T) {
	for _, c := range []struct {
		in   string
		want string
	}{
		{`\\server\share`, `\\server\share`},
		{`E:\`, `E:\`},
		{"Backup Drive", "Backup Drive"},
		{"äöü", "äöü"},
		{"tab\there", `"tab\there"`},
		{"new\nline", `"new\nline"`},
		{"invalid \xff", `"invalid \xff"`},
	} {
		rtest.Equals(t, c.want, Quote(c.in))
	}
}

func TestDisplayWidth(t *testing.T) {
	for _, c := range []struct {
		in   string
		want int
	}{
		{"", 0},
		{"FH_TARGET_URL", 13},
		{"ü", 1},
		{"备份", 4},
	} {
		rtest.Equals(t, c.want, DisplayWidth(c.in))
	}
}

func TestToJSONString(t *testing.T) {
	msg := struct {
		MessageType string `json:"message_type"`
		Path        string `json:"path"`
	}{"step", `\\server\share`}

	rtest.Equals(t, `{"message_type":"step","path":"\\\\server\\share"}`+"\n", ToJSONString(msg))
}
