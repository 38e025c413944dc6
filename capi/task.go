package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// Task is work posted to a foreign thread.
type Task interface {
	Execute()
}

// TaskFunc adapts a function to Task.
type TaskFunc func()

func (f TaskFunc) Execute() { f() }

// NewTask wraps t as a cef_task_t. Unlike a completion callback a task may
// be executed more than once if the foreign side chooses to.
func NewTask(t Task) *Ref[TaskStruct] {
	return wrap(resource.TypeTask, t, func(p *TaskStruct) {
		C.capi_install_task(p)
	})
}

//export capiTaskExecute
func capiTaskExecute(self *C.cef_task_t) {
	defer recoverThunk("cef_task_t", "execute")
	t, ok := hostValue[Task](unsafe.Pointer(self), resource.TypeTask, "execute")
	if !ok {
		return
	}
	t.Execute()
}
