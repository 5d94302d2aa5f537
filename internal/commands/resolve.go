package commands

import (
	"fmt"
	"sort"

	"devconsole/pkg/consoletypes"
)

// Execution is the outcome of a resolved command call.
// Failure holds an invocation error caught at the command boundary; Value is nil then.
type Execution struct {
	Command *Command
	Args    []any
	Value   any
	Failure error
}

// distance is the overload-distance of a command for count supplied tokens.
func distance(cmd *Command, count int) int {
	d := len(cmd.args) - count
	if d < 0 {
		return -d
	}
	return d
}

// Rank returns a copy of cands ordered by overload-distance for count supplied tokens:
// closest arity first, then fewer parameters.
func Rank(cands []*Command, count int) []*Command {
	ranked := make([]*Command, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := distance(ranked[i], count), distance(ranked[j], count)
		if di != dj {
			return di < dj
		}
		return len(ranked[i].args) < len(ranked[j].args)
	})
	return ranked
}

// BestFit returns the best-ranked overload of name for count tokens among those
// declaring at least minArity parameters.
func (r *Registry) BestFit(name string, count, minArity int) (*Command, bool) {
	var eligible []*Command
	for _, cmd := range r.FindByName(name) {
		if len(cmd.args) >= minArity {
			eligible = append(eligible, cmd)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}
	return Rank(eligible, count)[0], true
}

// CanExecute reports whether cmd accepts the supplied typed values.
func (r *Registry) CanExecute(cmd *Command, supplied []any) bool {
	return cmd != nil && cmd.CanExecute(supplied)
}

// ResolveAndExecute picks the first executable overload of name in overload-distance order,
// converts tokens for it and runs it.
// It returns CommandNotFoundError when name has no overloads and NoMatchingOverloadError
// when none accepts the tokens. Invocation failures are reported through Execution.Failure.
func (r *Registry) ResolveAndExecute(name string, tokens []string, conv ArgumentConverter) (*Execution, error) {
	cands := r.FindByName(name)
	if len(cands) == 0 {
		return nil, &consoletypes.CommandNotFoundError{Name: name}
	}

	var failures []error
	for _, cmd := range Rank(cands, len(tokens)) {
		args, err := cmd.Bind(tokens, conv)
		if err != nil {
			log.Debug("Overload rejected", "key", cmd.Key().String(), "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", cmd.Key(), err))
			continue
		}

		log.Debug("Executing command", "command", cmd.name, "args", tokens)
		exec := &Execution{Command: cmd, Args: args}
		exec.Value, exec.Failure = cmd.Execute(r.TargetResolver(), args)
		if exec.Failure != nil {
			log.Error("Command failed", "command", cmd.Key().String(), "error", exec.Failure)
		}
		return exec, nil
	}

	return nil, &consoletypes.NoMatchingOverloadError{Name: name, Args: tokens, Failures: failures}
}
