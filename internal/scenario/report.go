package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Entry is the trace of one step.
type Entry struct {
	Step    int      `json:"step"`
	Op      string   `json:"op"`
	Owner   string   `json:"owner"`
	Member  string   `json:"member,omitempty"`
	Input   any      `json:"input,omitempty"`
	Value   any      `json:"value,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	Err     string   `json:"error,omitempty"`
	Failure string   `json:"failure,omitempty"`
}

// OK reports whether the step met its expectations.
func (e Entry) OK() bool { return e.Failure == "" }

// Result is the trace of a scenario run.
type Result struct {
	Scenario string  `json:"scenario"`
	Target   string  `json:"target"`
	Entries  []Entry `json:"entries"`
	Failures int     `json:"failures"`
}

// OK reports whether every step met its expectations.
func (r *Result) OK() bool { return r.Failures == 0 }

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// WriteText writes r as an aligned table followed by a summary line.
func WriteText(w io.Writer, r *Result) error {
	fmt.Fprintf(w, "scenario %s (%s)\n", r.Scenario, r.Target)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tOP\tOWNER\tMEMBER\tRESULT\tSTATUS")
	fmt.Fprintln(tw, "----\t--\t-----\t------\t------\t------")
	for _, e := range r.Entries {
		status := "ok"
		if !e.OK() {
			status = "FAIL: " + e.Failure
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.Step, e.Op, e.Owner, e.Member, outcome(e), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.OK() {
		_, err := fmt.Fprintf(w, "PASS %d steps\n", len(r.Entries))
		return err
	}
	_, err := fmt.Fprintf(w, "FAIL %d of %d steps\n", r.Failures, len(r.Entries))
	return err
}

func outcome(e Entry) string {
	switch {
	case e.Err != "":
		return "error: " + e.Err
	case e.Op == "keys":
		return fmt.Sprint(e.Keys)
	case e.Op == "set" && e.Value == nil:
		return fmt.Sprintf("<- %v", e.Input)
	case e.Op == "set":
		return fmt.Sprintf("<- %v, reads %v", e.Input, e.Value)
	default:
		return fmt.Sprintf("%v", e.Value)
	}
}
