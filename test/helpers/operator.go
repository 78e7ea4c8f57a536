// test/helpers/operator.go
package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNoMoreAnswers is returned by ScriptedOperator once its script is used up
var ErrNoMoreAnswers = errors.New("no more scripted answers")

// ScriptedOperator answers prompts from a fixed script and records
// everything it was told and asked.
type ScriptedOperator struct {
	mu      sync.Mutex
	answers []string
	Said    []string
	Asked   []string
}

// NewScriptedOperator returns an operator that gives answers in order
func NewScriptedOperator(answers ...string) *ScriptedOperator {
	return &ScriptedOperator{answers: answers}
}

// Say records a message
func (o *ScriptedOperator) Say(_ context.Context, format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Said = append(o.Said, fmt.Sprintf(format, args...))
}

// Ask records the prompt and returns the next scripted answer
func (o *ScriptedOperator) Ask(_ context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Asked = append(o.Asked, prompt)
	if len(o.answers) == 0 {
		return "", ErrNoMoreAnswers
	}
	answer := o.answers[0]
	o.answers = o.answers[1:]
	return answer, nil
}

// Remaining returns the number of unused answers
func (o *ScriptedOperator) Remaining() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.answers)
}

// Transcript joins everything said so far
func (o *ScriptedOperator) Transcript() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.Said, "\n")
}
