package coinflow

import "fmt"

// StepError reports the step at which the walkthrough halted. Every
// earlier step completed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
