package rws

import (
	"context"
	"fmt"
	"net/url"
)

// RapidValue reads the raw value of a RAPID symbol in the given task. The
// value comes back in RAPID literal syntax: "TRUE", "3.14",
// "[[0,0,0],[1,0,0,0],...]" and so on.
func (c *Client) RapidValue(ctx context.Context, task, name string) (string, error) {
	body, err := c.get(ctx, symbolPath(task, name)+"?value=1")
	if err != nil {
		return "", fmt.Errorf("get rapid %s/%s: %w", task, name, err)
	}
	r, err := parseResource(body, "rap-data")
	if err != nil {
		return "", fmt.Errorf("get rapid %s/%s: %w", task, name, err)
	}
	return r.Field("value"), nil
}

// SetRapidValue writes a RAPID symbol in the given task. The value must be
// RAPID literal syntax for the symbol's type. The controller requires
// mastership for this write and answers 403 without it.
func (c *Client) SetRapidValue(ctx context.Context, task, name, value string) error {
	form := url.Values{}
	form.Set("value", value)

	if _, err := c.postForm(ctx, symbolPath(task, name), form); err != nil {
		return fmt.Errorf("set rapid %s/%s: %w", task, name, err)
	}
	c.debug("set rapid %s/%s = %s", task, name, value)
	return nil
}

func symbolPath(task, name string) string {
	return "/rw/rapid/symbol/RAPID/" + task + "/" + name + "/data"
}

// ExecutionState reads the controller-wide RAPID execution state.
func (c *Client) ExecutionState(ctx context.Context) (ExecutionState, error) {
	body, err := c.get(ctx, "/rw/rapid/execution")
	if err != nil {
		return ExecutionUnknown, fmt.Errorf("get execution state: %w", err)
	}
	r, err := parseResource(body, "rap-execution")
	if err != nil {
		return ExecutionUnknown, fmt.Errorf("get execution state: %w", err)
	}
	return ExecutionState(r.Field("ctrlexecstate")), nil
}

// StartExecution starts RAPID program execution with the given options.
// Requires motors on and AUTO mode; mastership is taken implicitly for the
// duration of the request.
func (c *Client) StartExecution(ctx context.Context, opts StartOptions) error {
	form := url.Values{}
	form.Set("regain", opts.Regain)
	form.Set("execmode", opts.ExecMode)
	form.Set("cycle", opts.Cycle)
	form.Set("condition", opts.Condition)
	form.Set("stopatbp", enabledDisabled(opts.StopAtBreakpoint))
	form.Set("alltaskbytsp", trueFalse(opts.AllTasksByTSP))

	if _, err := c.postForm(ctx, "/rw/rapid/execution/start?mastership=implicit", form); err != nil {
		return fmt.Errorf("start execution: %w", err)
	}
	c.debug("execution started (cycle=%s)", opts.Cycle)
	return nil
}

// StopExecution stops RAPID program execution.
func (c *Client) StopExecution(ctx context.Context, opts StopOptions) error {
	form := url.Values{}
	form.Set("stopmode", opts.Mode)
	form.Set("usetsp", opts.UseTSP)

	if _, err := c.postForm(ctx, "/rw/rapid/execution/stop", form); err != nil {
		return fmt.Errorf("stop execution: %w", err)
	}
	c.debug("execution stopped (mode=%s)", opts.Mode)
	return nil
}

// ResetProgramPointer moves the program pointer of every normal task back to
// its main procedure. Execution must be stopped.
func (c *Client) ResetProgramPointer(ctx context.Context) error {
	if _, err := c.postForm(ctx, "/rw/rapid/execution/resetpp?mastership=implicit", url.Values{}); err != nil {
		return fmt.Errorf("reset program pointer: %w", err)
	}
	c.debug("program pointer reset")
	return nil
}

// Tasks lists the RAPID tasks configured on the controller.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	body, err := c.get(ctx, "/rw/rapid/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	resources, err := parseResources(body)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var tasks []Task
	for i := range resources {
		r := &resources[i]
		if r.Class != "rap-task" {
			continue
		}
		t := Task{
			Name:           r.Field("name"),
			MotionTask:     r.Field("motiontask") == "TRUE",
			Active:         r.Field("active") == "On",
			ExecutionState: ExecutionState(r.Field("excstate")),
		}
		if t.Name == "" {
			t.Name = r.Title
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// LoadProgram loads a program stored on the controller file system into the
// given task. mode is "replace" (unload the current program first) or "add".
func (c *Client) LoadProgram(ctx context.Context, task, progPath, mode string) error {
	form := url.Values{}
	form.Set("progpath", progPath)
	form.Set("loadmode", mode)

	if _, err := c.postForm(ctx, "/rw/rapid/tasks/"+task+"/program/load?mastership=implicit", form); err != nil {
		return fmt.Errorf("load program %s into %s: %w", progPath, task, err)
	}
	c.debug("loaded program %s into %s", progPath, task)
	return nil
}

// SaveProgram saves the program currently loaded in the given task to the
// controller file system under destPath.
func (c *Client) SaveProgram(ctx context.Context, task, name, destPath string) error {
	form := url.Values{}
	form.Set("path", destPath)

	query := url.Values{}
	query.Set("name", name)

	if _, err := c.postForm(ctx, "/rw/rapid/tasks/"+task+"/program/save?"+query.Encode(), form); err != nil {
		return fmt.Errorf("save program %s from %s: %w", name, task, err)
	}
	c.debug("saved program %s to %s", name, destPath)
	return nil
}

func enabledDisabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func trueFalse(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
