package cmd

import (
	"strings"
	"testing"
)

func TestEvalRun(t *testing.T) {
	const src = "const a = 1 + 2\nconst s = $\"a={a}\"\nfn f x = x\nconst b = a * 2"

	tests := []struct {
		name    string
		input   string
		names   []string
		want    string
		wantErr string
	}{
		{name: "all", input: src, want: "a = 3\ns = \"a=3\"\nb = 6\n"},
		{name: "selected", input: src, names: []string{"b", "a"}, want: "a = 3\nb = 6\n"},
		{name: "unknown", input: src, names: []string{"z"}, wantErr: "unknown constant"},
		{name: "none", input: "fn f x = x", want: ""},
		{name: "partial", input: "const a = 1\nconst b = nope", want: "a = 1\n", wantErr: "evaluation failed"},
		{name: "syntax", input: "const = 1", wantErr: "syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := newTestContext(t, Input{Stdin: strings.NewReader(tt.input)}, nil)

			err := (&Eval{Names: tt.names}).Run(ctx)

			if tt.wantErr == "" && err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("Eval.Run() error = %v, want %q", err, tt.wantErr)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
