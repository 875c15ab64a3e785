package entity

import (
	"errors"
	"strings"
)

var ErrEmptyStages = errors.New("at least one stage is required")

// Stage is one value of the pipeline vocabulary. A Stage obtained through
// Stages.Lookup or Stages.Resolve is a member of that set.
type Stage string

func (s Stage) String() string { return string(s) }

// Stages is the ordered, duplicate-free pipeline vocabulary.
type Stages []Stage

func DefaultStages() Stages {
	return Stages{"New", "Qualified", "Proposal", "Won", "Lost"}
}

// NewStages trims every value, drops empty ones and removes duplicates,
// keeping the first occurrence.
func NewStages(raw []string) (Stages, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make(Stages, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Stage(v))
	}
	if len(out) == 0 {
		return nil, ErrEmptyStages
	}
	return out, nil
}

func (s Stages) Lookup(v string) (Stage, bool) {
	for _, st := range s {
		if string(st) == v {
			return st, true
		}
	}
	return "", false
}

func (s Stages) Contains(v Stage) bool {
	_, ok := s.Lookup(string(v))
	return ok
}

// First returns the stage new or repaired leads fall back to.
func (s Stages) First() Stage {
	if len(s) == 0 {
		return DefaultStages()[0]
	}
	return s[0]
}

// Resolve returns v when it is a member of the set, otherwise the first stage.
func (s Stages) Resolve(v string) Stage {
	if st, ok := s.Lookup(v); ok {
		return st
	}
	return s.First()
}

func (s Stages) Strings() []string {
	out := make([]string, len(s))
	for i, st := range s {
		out[i] = string(st)
	}
	return out
}
