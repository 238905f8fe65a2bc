// application/scheduler/errors.go
package scheduler

import "fmt"

// PanicError обработчик задачи запаниковал
type PanicError struct {
	Job   string
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("job %q panicked: %v", e.Job, e.Value)
}
