package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvocation(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        Invocation
	}

	testCases := []TestCase{
		{
			description: "bare command has no argument",
			text:        "/status",
			want:        Invocation{Name: "/status"},
		},
		{
			description: "single word argument",
			text:        "/register ken",
			want:        Invocation{Name: "/register", Argument: "ken", HasArgument: true},
		},
		{
			description: "argument keeps inner spaces",
			text:        "/broadcast hello   everyone out there",
			want:        Invocation{Name: "/broadcast", Argument: "hello   everyone out there", HasArgument: true},
		},
		{
			description: "whitespace run is skipped",
			text:        "/weather \t  Bandung",
			want:        Invocation{Name: "/weather", Argument: "Bandung", HasArgument: true},
		},
		{
			description: "trailing whitespace is an empty argument",
			text:        "/register ",
			want:        Invocation{Name: "/register", Argument: "", HasArgument: true},
		},
		{
			description: "newline separates argument",
			text:        "/broadcast\nline one",
			want:        Invocation{Name: "/broadcast", Argument: "line one", HasArgument: true},
		},
		{
			description: "empty input",
			text:        "",
			want:        Invocation{},
		},
		{
			description: "bot mention is split off",
			text:        "/status@CiestaBot",
			want:        Invocation{Name: "/status", Mention: "CiestaBot"},
		},
		{
			description: "bot mention with argument",
			text:        "/weather@CiestaBot Bandung",
			want:        Invocation{Name: "/weather", Argument: "Bandung", HasArgument: true, Mention: "CiestaBot"},
		},
		{
			description: "mention in argument stays in argument",
			text:        "/broadcast ping @someone",
			want:        Invocation{Name: "/broadcast", Argument: "ping @someone", HasArgument: true},
		},
		{
			description: "case is preserved",
			text:        "/Status",
			want:        Invocation{Name: "/Status"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseInvocation(testCase.text))
		})
	}
}

func TestLooksLikeCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "prefixed", text: "/foo", want: true},
		{name: "prefixed with args", text: "/foo bar", want: true},
		{name: "mention of another bot", text: "/foo@otherbot", want: false},
		{name: "mention in args", text: "/foo hi @someone", want: false},
		{name: "plain text", text: "hello", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeCommand(tt.text, "/"))
		})
	}
}

func TestInvocationAddressedTo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "no mention", text: "/status", want: true},
		{name: "own name", text: "/status@CiestaBot", want: true},
		{name: "own name any case", text: "/status@ciestabot", want: true},
		{name: "other bot", text: "/status@OtherBot", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInvocation(tt.text).AddressedTo("CiestaBot"))
		})
	}
}
