package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/varstate/state"
)

func TestParseInitial(t *testing.T) {
	vars, order, err := parseInitial([]byte("zeta: 1\nalpha: two\nmid: true\n"))
	if err != nil {
		t.Fatalf("parseInitial() error = %v", err)
	}

	if !slices.Equal(order, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("order = %v, want document order", order)
	}
	if vars["zeta"] != 1 || vars["alpha"] != "two" || vars["mid"] != true {
		t.Errorf("vars = %v", vars)
	}
}

func TestParseInitial_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "sequence", input: "- a\n- b\n"},
		{name: "scalar", input: "just text\n"},
		{name: "malformed", input: "a: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseInitial([]byte(tt.input)); err == nil {
				t.Error("parseInitial() should fail")
			}
		})
	}
}

func TestParseInitial_Empty(t *testing.T) {
	vars, order, err := parseInitial(nil)
	if err != nil {
		t.Fatalf("parseInitial() error = %v", err)
	}
	if len(vars) != 0 || len(order) != 0 {
		t.Errorf("vars = %v, order = %v, want empty", vars, order)
	}
}

func TestForEachPartial(t *testing.T) {
	input := "b: 5\n---\nc: 7\nz: 1\n"

	var got []map[string]any
	err := forEachPartial(strings.NewReader(input), func(partial map[string]any) error {
		got = append(got, partial)
		return nil
	})
	if err != nil {
		t.Fatalf("forEachPartial() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("decoded %d partials, want 2", len(got))
	}
	if got[0]["b"] != 5 || got[1]["c"] != 7 || got[1]["z"] != 1 {
		t.Errorf("partials = %v", got)
	}
}

func TestForEachPartial_StopsOnError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	err := forEachPartial(strings.NewReader("a: 1\n---\na: 2\n"), func(map[string]any) error {
		calls++
		return stop
	})

	if !errors.Is(err, stop) {
		t.Errorf("error = %v, want %v", err, stop)
	}
	if !strings.Contains(err.Error(), "update 1") {
		t.Errorf("error %q should name the failing update", err)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestApplyUpdate(t *testing.T) {
	s := state.New(map[string]any{"a": 1, "b": 2})

	var buf bytes.Buffer
	if err := applyUpdate(&buf, s, map[string]any{"b": 3, "z": 0}, false); err != nil {
		t.Fatalf("applyUpdate() error = %v", err)
	}

	var report map[string]state.Change
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(report) != 2 || !report["b"].HasChanged || report["a"].HasChanged {
		t.Errorf("report = %+v", report)
	}
}

func TestApplyUpdate_Strict(t *testing.T) {
	s := state.New(map[string]any{"a": 1})

	var buf bytes.Buffer
	err := applyUpdate(&buf, s, map[string]any{"z": 0}, true)
	if !errors.Is(err, state.ErrUnknownKey) {
		t.Errorf("error = %v, want ErrUnknownKey", err)
	}
	if buf.Len() != 0 {
		t.Errorf("rejected update wrote output: %s", buf.String())
	}
}
